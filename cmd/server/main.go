package main

import (
	"log"

	"anoa.com/tutorcabinet/internal/bootstrap"
	"anoa.com/tutorcabinet/internal/config"
	"anoa.com/tutorcabinet/internal/server"
	"anoa.com/tutorcabinet/pkg/database"
	"anoa.com/tutorcabinet/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		appLog.Fatal("migration failed", "error", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.EnsureDefaultTutor(db, appLog); err != nil {
			appLog.Fatal("failed to seed default tutor", "error", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			appLog.Fatal("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		appLog.Warn("REDIS_URL is not set, login rate limiting disabled")
	}

	srv := server.NewServer(cfg, db, redisClient, appLog)

	appLog.Info("server starting", "port", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server exited with error", "error", err)
	}
}
