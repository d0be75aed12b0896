// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the Taskly server.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"TASKLY_ADDR" envDefault:":8080"`

	// DatabasePath is the SQLite database file, ":memory:" for ephemeral.
	DatabasePath string `env:"TASKLY_DB_PATH" envDefault:"taskly.db"`

	// JWTSecret signs access tokens (HS256). The default is for
	// development only and must be overridden in production.
	JWTSecret string `env:"TASKLY_JWT_SECRET" envDefault:"dev-insecure-secret"`

	// AccessTokenTTL is the access token lifetime.
	AccessTokenTTL time.Duration `env:"TASKLY_TOKEN_TTL" envDefault:"24h"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"TASKLY_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
