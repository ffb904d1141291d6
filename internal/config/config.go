// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Comma-separated.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// RedisAddr selects the Redis cache store when set (host:port).
	// Empty means the in-process cache is used instead.
	RedisAddr string `env:"REDIS_ADDR"`

	// RedisPassword is the optional Redis AUTH password.
	RedisPassword string `env:"REDIS_PASSWORD"`

	// SlowQueryThreshold is how long a storage operation may take before
	// it is logged as slow. Defaults to 100ms.
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"100ms"`

	// HealthInterval is how often the background database probe runs.
	// Defaults to 30s.
	HealthInterval time.Duration `env:"HEALTH_INTERVAL" envDefault:"30s"`

	// RequestTimeout bounds every request's storage work. Defaults to 30s.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// AutoMigrate applies pending schema migrations on startup when true.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`

	// MaxBodySize is the largest accepted request body in bytes.
	// Defaults to 1 MiB; bulk event payloads fit comfortably.
	MaxBodySize int64 `env:"MAX_BODY_SIZE" envDefault:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error if parsing fails or a required variable is not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config.Load: required environment variable not set: DATABASE_URL")
	}

	return cfg, nil
}
