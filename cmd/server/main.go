package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/circle/api/internal/config"
	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/handler"
	"github.com/forgo/circle/api/internal/jobs"
	"github.com/forgo/circle/api/internal/middleware"
	"github.com/forgo/circle/api/internal/repository"
	"github.com/forgo/circle/api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize storage
	cols, backend, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store",
			slog.String("backend", cfg.Store.Backend),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize services
	svc := newServices(cols, logger)

	// Initialize background jobs
	if cfg.Jobs.SweepInterval > 0 {
		sweeper := jobs.NewOrphanSweeper(svc.users, cfg.Jobs.SweepInterval, logger)
		sweeper.Start()
		defer sweeper.Stop()
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     cfg.Idempotency.TTL,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(cfg, svc, backend, rateLimiter, idempotencyStore),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("backend", cfg.Store.Backend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// openStore creates the collections for the configured backend. The returned
// Pinger is nil for the in-memory backend.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Collections, handler.Pinger, func(), error) {
	if !cfg.UsesSurrealDB() {
		cols, err := repository.NewMemory()
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Info("using in-memory store")
		return cols, nil, func() {}, nil
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() { _ = db.Close() }

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	cols, err := repository.NewSurreal(ctx, db)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return cols, db, closeDB, nil
}

// services bundles the domain services built over one set of collections
type services struct {
	users       *service.UserService
	profiles    *service.ProfileService
	posts       *service.PostService
	memberTypes *service.MemberTypeService
}

func newServices(cols *repository.Collections, logger *slog.Logger) *services {
	return &services{
		users: service.NewUserService(service.UserServiceConfig{
			Users:    cols.Users,
			Profiles: cols.Profiles,
			Posts:    cols.Posts,
			Logger:   logger,
		}),
		profiles: service.NewProfileService(service.ProfileServiceConfig{
			Profiles:    cols.Profiles,
			Users:       cols.Users,
			MemberTypes: cols.MemberTypes,
			Logger:      logger,
		}),
		posts: service.NewPostService(service.PostServiceConfig{
			Posts: cols.Posts,
			Users: cols.Users,
		}),
		memberTypes: service.NewMemberTypeService(cols.MemberTypes),
	}
}

// newRouter mounts every endpoint and wraps the mux in the global middleware
func newRouter(cfg *config.Config, svc *services, backend handler.Pinger, limiter *middleware.RateLimiter, idempotency *middleware.IdempotencyStore) http.Handler {
	mux := http.NewServeMux()

	handler.NewHealthHandler(backend).RegisterRoutes(mux)
	handler.NewUserHandler(svc.users).RegisterRoutes(mux)
	handler.NewProfileHandler(svc.profiles).RegisterRoutes(mux)
	handler.NewPostHandler(svc.posts).RegisterRoutes(mux)
	handler.NewMemberTypeHandler(svc.memberTypes).RegisterRoutes(mux)

	// Idempotency sits inside Compress so replays store and return plain bodies
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimit(limiter, "/health"),
		middleware.Compress,
		middleware.Idempotency(idempotency),
	)
}
