package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret  string
	JWTTTL     time.Duration
	LoginLimit time.Duration

	LLMBaseURL    string
	LLMModel      string
	LLMTimeout    time.Duration
	LLMMaxRetries int

	MaterialsDir string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		LLMBaseURL: getEnv("LLM_BASE_URL", "http://127.0.0.1:12345"),
		LLMModel:   getEnv("LLM_MODEL", "google/gemma-3-4b"),

		MaterialsDir: getEnv("MATERIALS_DIR", "materials"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.LoginLimit, err = parseDuration(getEnv("LOGIN_RATE_LIMIT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	// The model can take minutes on a long material, hence the generous default.
	cfg.LLMTimeout, err = parseDuration(getEnv("LLM_TIMEOUT", "240s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	cfg.LLMMaxRetries, err = strconv.Atoi(getEnv("LLM_MAX_RETRIES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
