package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gea-verde/gea-api/internal/api/handler/v1/response"
)

var errInvalidAPIKey = errors.New("invalid api key")

// RequireAPIKey guards the integration endpoints used by the receipt
// pipeline. An empty configured key disables the surface entirely.
func RequireAPIKey(apiKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		presented := ctx.GetHeader("X-API-Key")
		if apiKey == "" || presented == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidAPIKey))

			return
		}

		ctx.Next()
	}
}
