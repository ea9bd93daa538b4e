package authhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Service interface {
	Login(ctx context.Context, password string) (auth.Session, error)
	ChangePassword(ctx context.Context, current, next string) error
}

type Handler struct {
	Service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{Service: service}
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.With(middleware.RequireAdmin).Post("/password", h.handleChangePassword)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}

	session, err := h.Service.Login(r.Context(), payload.Password)
	if err != nil {
		shared.FailMapped(w, reqID, err, "token_error",
			shared.ErrorRule{Target: auth.ErrInvalidCredentials, Status: http.StatusUnauthorized, Code: "invalid_credentials"},
		)
		return
	}
	api.Success(w, session, reqID)
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload changePasswordRequest
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}

	if err := h.Service.ChangePassword(r.Context(), payload.CurrentPassword, payload.NewPassword); err != nil {
		shared.FailMapped(w, reqID, err, "password_change_failed",
			shared.ErrorRule{Target: auth.ErrInvalidCredentials, Status: http.StatusUnauthorized, Code: "invalid_credentials"},
			shared.BadRequest(auth.ErrWeakPassword, "weak_password"),
		)
		return
	}
	api.Success(w, map[string]bool{"changed": true}, reqID)
}
