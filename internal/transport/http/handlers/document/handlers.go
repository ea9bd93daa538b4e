package documenthandler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"perftrack/internal/domain/document"
	"perftrack/internal/transport/http/api"
)

type DocumentStore interface {
	Load(ctx context.Context) document.Document
	SaveRaw(ctx context.Context, payload []byte) document.SaveResult
	MaxBytes() int64
}

// Handler serves the whole-document endpoints used by the single page app.
// Responses are written without the API envelope.
type Handler struct {
	Store DocumentStore
	Log   *zap.Logger
}

func NewHandler(store DocumentStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: store, Log: log.Named("document")}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/data", h.handleFetch)
	r.Post("/save", h.handleSave)
}

func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	api.WriteRaw(w, http.StatusOK, h.Store.Load(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	limit := h.Store.MaxBytes()
	payload, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.WriteRaw(w, http.StatusRequestEntityTooLarge, document.SaveResult{Message: document.MessageTooLarge})
			return
		}
		h.Log.Warn("save body read failed", zap.Error(err))
		api.WriteRaw(w, http.StatusBadRequest, document.SaveResult{Message: document.MessageInvalid})
		return
	}

	res := h.Store.SaveRaw(r.Context(), payload)
	api.WriteRaw(w, saveStatus(res), res)
}

func saveStatus(res document.SaveResult) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Message {
	case document.MessageTooLarge:
		return http.StatusRequestEntityTooLarge
	case document.MessageInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
