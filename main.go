package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/gea-verde/gea-api/cmd/app"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @securityDefinitions.apikey IntegrationKey
// @in header
// @name X-API-Key
// @description Shared key for the receipt pipeline
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
