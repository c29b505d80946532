package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends
const (
	BackendMemory    = "memory"
	BackendSurrealDB = "surrealdb"
)

// Config holds all application configuration
type Config struct {
	LogLevel    string            `env:"LOG_LEVEL" envDefault:"info"`
	Server      ServerConfig      `envPrefix:"SERVER_"`
	CORS        CORSConfig        `envPrefix:"CORS_"`
	Store       StoreConfig       `envPrefix:"STORE_"`
	Database    DatabaseConfig    `envPrefix:"DB_"`
	RateLimit   RateLimitConfig   `envPrefix:"RATE_LIMIT_"`
	Idempotency IdempotencyConfig `envPrefix:"IDEMPOTENCY_"`
	Jobs        JobsConfig        `envPrefix:"JOBS_"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Env          string        `env:"ENV" envDefault:"development"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// StoreConfig selects where records live
type StoreConfig struct {
	Backend string `env:"BACKEND" envDefault:"memory"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `env:"HOST" envDefault:"localhost"`
	Port      string `env:"PORT" envDefault:"8000"`
	Namespace string `env:"NAMESPACE" envDefault:"circle"`
	Database  string `env:"DATABASE" envDefault:"main"`
	User      string `env:"USER" envDefault:"root"`
	Password  string `env:"PASSWORD" envDefault:"root"`
}

// RateLimitConfig holds the per-client token bucket settings
type RateLimitConfig struct {
	Rate   int           `env:"RATE" envDefault:"100"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
	Burst  int           `env:"BURST" envDefault:"20"`
}

// IdempotencyConfig holds the replay window for Idempotency-Key requests
type IdempotencyConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"24h"`
}

// JobsConfig holds background job settings
type JobsConfig struct {
	// SweepInterval is how often orphaned records are removed; 0 disables the sweep
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return parse(env.Options{})
}

// loadFrom reads configuration from the given variables instead of the process environment
func loadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// UsesSurrealDB returns true if records are persisted in SurrealDB
func (c *Config) UsesSurrealDB() bool {
	return c.Store.Backend == BackendSurrealDB
}

// SlogLevel returns the configured log level, falling back to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be positive"))
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got '%s'", c.LogLevel))
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSurrealDB:
		// Connection settings only matter when SurrealDB is used
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be '%s' or '%s', got '%s'", BackendMemory, BackendSurrealDB, c.Store.Backend))
	}

	if c.RateLimit.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RATE must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST cannot be negative"))
	}
	if c.Idempotency.TTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be positive"))
	}
	if c.Jobs.SweepInterval < 0 {
		errs = append(errs, errors.New("JOBS_SWEEP_INTERVAL cannot be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
