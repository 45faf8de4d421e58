package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-me"

// Config keeps runtime settings for the API server.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	Env           string
	StatsInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Env:           strings.TrimSpace(os.Getenv("APP_ENV")),
		StatsInterval: parseInterval(strings.TrimSpace(os.Getenv("STATS_INTERVAL_HOURS"))),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todo.db"
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.StatsInterval == 0 {
		cfg.StatsInterval = 5 * time.Hour
	}

	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return cfg, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool {
	return c.Env == "production"
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
