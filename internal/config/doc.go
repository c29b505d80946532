// Package config manages application configuration for the Circle API.
//
// Configuration is read from environment variables into tagged structs with
// github.com/caarlos0/env and checked with Validate, which reports every
// problem at once:
//
//	cfg, err := config.Load()
//	if err == nil {
//	    err = cfg.Validate()
//	}
//
// # Environment Variables
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production or test
//	SERVER_READ_TIMEOUT    - http.Server read timeout (default: 15s)
//	SERVER_WRITE_TIMEOUT   - http.Server write timeout (default: 15s)
//	CORS_ALLOWED_ORIGINS   - comma separated origins
//	LOG_LEVEL              - debug, info, warn or error
//	STORE_BACKEND          - memory or surrealdb (default: memory)
//	DB_HOST, DB_PORT       - SurrealDB address (default: localhost:8000)
//	DB_NAMESPACE           - SurrealDB namespace (default: circle)
//	DB_DATABASE            - SurrealDB database (default: main)
//	DB_USER, DB_PASSWORD   - SurrealDB credentials
//	RATE_LIMIT_RATE        - requests per window per client (default: 100)
//	RATE_LIMIT_WINDOW      - rate limit window (default: 1m)
//	RATE_LIMIT_BURST       - extra burst tokens (default: 20)
//	IDEMPOTENCY_TTL        - how long POST responses are replayable (default: 24h)
//	JOBS_SWEEP_INTERVAL    - orphan sweep interval, 0 disables (default: 10m)
package config
