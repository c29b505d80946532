package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/circle/api/internal/model"
)

// Pinger reports whether a storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	backend Pinger
}

// NewHealthHandler creates a health handler. A nil backend is always healthy.
func NewHealthHandler(backend Pinger) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// RegisterRoutes mounts the health endpoint on mux
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.backend.Ping(ctx); err != nil {
			slog.Warn("health check failed", slog.String("error", err.Error()))
			WriteError(w, model.NewServiceUnavailableError("storage backend unreachable"))
			return
		}
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
