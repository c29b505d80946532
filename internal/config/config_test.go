package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBaseConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:         "8080",
			Env:          "development",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		CORS:  CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Store: StoreConfig{Backend: BackendMemory},
		RateLimit: RateLimitConfig{
			Rate:   100,
			Window: time.Minute,
			Burst:  20,
		},
		Idempotency: IdempotencyConfig{TTL: time.Hour},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "circle", cfg.Database.Namespace)
	assert.Equal(t, 100, cfg.RateLimit.Rate)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.SweepInterval)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	cfg, err := loadFrom(map[string]string{
		"SERVER_PORT":          "9090",
		"SERVER_ENV":           "production",
		"CORS_ALLOWED_ORIGINS": "https://a.test,https://b.test",
		"STORE_BACKEND":        "surrealdb",
		"DB_HOST":              "db.internal",
		"RATE_LIMIT_WINDOW":    "30s",
		"LOG_LEVEL":            "debug",
		"JOBS_SWEEP_INTERVAL":  "0",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.UsesSurrealDB())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Zero(t, cfg.Jobs.SweepInterval)
}

func TestLoad_MalformedValue(t *testing.T) {
	_, err := loadFrom(map[string]string{"RATE_LIMIT_RATE": "lots"})
	assert.Error(t, err)
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validBaseConfig().Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		mention string
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }, "SERVER_PORT"},
		{"invalid env", func(c *Config) { c.Server.Env = "staging" }, "SERVER_ENV"},
		{"no origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, "CORS_ALLOWED_ORIGINS"},
		{"zero timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "SERVER_WRITE_TIMEOUT"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, "STORE_BACKEND"},
		{"zero rate", func(c *Config) { c.RateLimit.Rate = 0 }, "RATE_LIMIT_RATE"},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }, "RATE_LIMIT_BURST"},
		{"zero ttl", func(c *Config) { c.Idempotency.TTL = 0 }, "IDEMPOTENCY_TTL"},
		{"negative sweep interval", func(c *Config) { c.Jobs.SweepInterval = -time.Second }, "JOBS_SWEEP_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestConfig_Validate_DatabaseOnlyForSurrealDB(t *testing.T) {
	cfg := validBaseConfig()
	assert.NoError(t, cfg.Validate(), "memory backend needs no DB settings")

	cfg.Store.Backend = BackendSurrealDB
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")

	cfg.Database = DatabaseConfig{Host: "localhost", Port: "8000", Namespace: "circle", Database: "main"}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Server.Env = "invalid"
	cfg.RateLimit.Rate = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"SERVER_PORT", "SERVER_ENV", "RATE_LIMIT_RATE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := validBaseConfig()

	cfg.LogLevel = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())

	cfg.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := validBaseConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}
