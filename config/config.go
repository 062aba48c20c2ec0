package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	MagicTokenTTLMin int           `env:"MAGIC_TOKEN_TTL_MIN" envDefault:"15" validate:"min=1,max=1440"`
	AccessTokenTTL   time.Duration `env:"JWT_ACCESS_TTL"  envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	AccessSecret  string `env:"JWT_ACCESS_SECRET,required"  validate:"required,min=32"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET,required" validate:"required,min=32,nefield=AccessSecret"`

	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:4001"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	PurgeCron string `env:"PURGE_CRON" envDefault:"@hourly"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MagicTokenTTL returns the magic-link lifetime as a duration.
func (c *Config) MagicTokenTTL() time.Duration {
	return time.Duration(c.MagicTokenTTLMin) * time.Minute
}

// DevMode reports whether the process runs with development semantics:
// magic links are returned in API responses and stay replayable until
// superseded or expired. Never true outside ENV=local.
func (c *Config) DevMode() bool {
	return c.Env == "local"
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
