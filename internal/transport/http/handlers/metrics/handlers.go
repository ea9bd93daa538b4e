package metricshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
)

type Snapshotter interface {
	Snapshot() map[string]any
}

type Handler struct {
	Metrics Snapshotter
}

func NewHandler(m Snapshotter) *Handler {
	return &Handler{Metrics: m}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/metrics", h.handleSnapshot)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
