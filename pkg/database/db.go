package database

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB   *gorm.DB
	once sync.Once
)

// Connect opens the shared connection. DB_DRIVER selects the backend:
// "postgres" (default) or "sqlite" (the store the original deployment used).
func Connect() *gorm.DB {
	once.Do(func() {
		var (
			db  *gorm.DB
			err error
		)

		switch valueOrDefault("DB_DRIVER", "postgres") {
		case "sqlite":
			path := valueOrDefault("SQLITE_PATH", "tutoring.db")
			db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		default:
			dsn := fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				valueOrDefault("DB_HOST", "localhost"),
				valueOrDefault("DB_USER", "postgres"),
				os.Getenv("DB_PASS"),
				valueOrDefault("DB_NAME", "tutor_cabinet"),
				valueOrDefault("DB_PORT", "5432"),
			)
			db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}

		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}

		DB = db
	})

	return DB
}

func GetDB() *gorm.DB {
	if DB == nil {
		return Connect()
	}
	return DB
}

func valueOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
