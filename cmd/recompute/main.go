// Command recompute rebuilds every user's green coin balance and
// gamification snapshot from their records. Run it after a manual data
// fix or to repair drift left by a partial failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gea-verde/gea-api/internal/config"
	"github.com/gea-verde/gea-api/internal/db"
	"github.com/gea-verde/gea-api/internal/logger"
	"github.com/gea-verde/gea-api/internal/repository"
	"github.com/gea-verde/gea-api/internal/repository/dao"
	"github.com/gea-verde/gea-api/internal/service"
)

func main() {
	configPath := flag.String("config", "./cmd/app/config.yml", "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "recompute failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx := context.Background()

	gamificationRepo := repository.NewGamificationRepository(dao.NewGamificationDAO(postgresDB))
	table := service.NewGamificationService(gamificationRepo).LoadTable(ctx)

	recordRepo := repository.NewRecordRepository(dao.NewRecordDAO(postgresDB))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
	redemptionRepo := repository.NewRedemptionRepository(dao.NewRedemptionDAO(postgresDB))
	comercioRepo := repository.NewComercioRepository(dao.NewComercioDAO(postgresDB))
	svc := service.NewRecordService(recordRepo, userRepo, redemptionRepo, comercioRepo, table)

	repaired, err := svc.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("svc.RecomputeAll -> %w", err)
	}

	zap.L().Info("recompute finished", zap.Int("users_repaired", repaired))

	return nil
}
