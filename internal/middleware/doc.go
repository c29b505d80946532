// Package middleware provides HTTP middleware for the Circle API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging with log/slog
//   - Recovery: turns panics into 500 problem responses
//   - CORS: origin allow-list and preflight handling
//   - RateLimit: token bucket per client address
//   - Compress: gzip responses when the client accepts it
//   - Idempotency: replays POST responses for a repeated Idempotency-Key
//
// # Usage
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(cfg.CORS.AllowedOrigins),
//	    middleware.RateLimit(limiter, "/health"),
//	    middleware.Compress,
//	    middleware.Idempotency(idempotencyStore),
//	)
//
// Middlewares run in the order given; the first one sees the request first.
//
// # Idempotency
//
// Subscribing appends to a list without de-duplication, so a blindly
// retried POST would subscribe twice. Clients that retry send the same
// Idempotency-Key and get the first response back, marked with
// X-Idempotency-Replayed. Server errors are not remembered.
//
// # Context Values
//
//   - GetRequestID(ctx): Returns the request identifier
package middleware
