package reportshandler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/reports"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequireAdmin).Get("/leaderboard.pdf", h.handleLeaderboardPDF)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Dashboard(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaderboardPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Service.LeaderboardPDF(r.Context(), &buf); err != nil {
		shared.FailMapped(w, middleware.GetRequestID(r.Context()), err, "pdf_failed")
		return
	}
	filename := "leaderboard-" + time.Now().Format("2006-01-02") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
