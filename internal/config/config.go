package config

import (
	"fmt"
	"os"
	"time"

	"gameserver-stats/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	SourceURL    string
	SourceToken  string
	DBPath       string
	ServerPort   string
	LogLevel     string
	PollInterval time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		SourceURL:    getEnv("SOURCE_URL", ""),
		SourceToken:  getEnv("SOURCE_TOKEN", ""),
		DBPath:       getEnv("DB_PATH", "gameserver.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		PollInterval: constants.DefaultPollInterval,
	}

	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("SOURCE_URL is required")
	}

	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL %q: %w", raw, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %q", raw)
		}
		cfg.PollInterval = interval
	}

	logger.Info().
		Str("source_url", cfg.SourceURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("poll_interval", cfg.PollInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
