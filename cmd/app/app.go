package app

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gea-verde/gea-api/internal/api"
	"github.com/gea-verde/gea-api/internal/config"
	"github.com/gea-verde/gea-api/internal/db"
	"github.com/gea-verde/gea-api/internal/logger"
	"github.com/gea-verde/gea-api/internal/service"
	"github.com/gea-verde/gea-api/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
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

	var redisClient *redis.Client
	if conf.Redis != nil && conf.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Host + ":" + conf.Redis.Port,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
	} else {
		zap.L().Warn("redis is not configured, rate limiting is disabled")
	}

	var uploader service.ImageUploader = storage.DisabledUploader{}
	if conf.S3 != nil && conf.S3.Bucket != "" {
		s3Client, err := storage.NewS3Client(conf.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize s3 client -> %w", err)
		}
		uploader = s3Client
	} else {
		zap.L().Warn("s3 is not configured, image uploads are disabled")
	}

	s := api.NewServer(conf, postgresDB, redisClient, uploader)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
