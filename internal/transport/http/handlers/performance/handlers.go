package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/core"
	"perftrack/internal/domain/document"
	"perftrack/internal/domain/performance"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

var sessionErrors = []shared.ErrorRule{
	shared.NotFound(performance.ErrEmployeeNotFound, "employee_not_found"),
	shared.NotFound(performance.ErrRaterNotFound, "rater_not_found"),
	shared.NotFound(performance.ErrTaskNotFound, "task_not_found"),
	shared.NotFound(performance.ErrRuleNotFound, "rule_not_found"),
	shared.BadRequest(performance.ErrEmptySession, "empty_session"),
	shared.BadRequest(performance.ErrSelfRating, "self_rating"),
	shared.BadRequest(performance.ErrSelfReport, "self_report"),
	shared.BadRequest(performance.ErrDuplicateTarget, "duplicate_target"),
	shared.BadRequest(performance.ErrIncompleteRatings, "incomplete_ratings"),
	shared.BadRequest(performance.ErrUnknownCategory, "unknown_category"),
	shared.BadRequest(performance.ErrInvalidRating, "invalid_rating"),
	shared.BadRequest(performance.ErrAdminReport, "admin_report"),
}

var categoryErrors = []shared.ErrorRule{
	shared.BadRequest(performance.ErrCategoryRequired, "invalid_payload"),
	shared.Conflict(performance.ErrCategoryExists, "category_exists"),
	shared.NotFound(performance.ErrCategoryNotFound, "category_not_found"),
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ratingPage struct {
	Items  []document.Rating `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/leaderboard", h.handleLeaderboard)
		r.Get("/scores/{employeeID}", h.handleScore)
		r.Get("/trends/{employeeID}", h.handleTrend)
		r.Get("/ratings/{employeeID}", h.handleRatingsReceived)
		r.Get("/raters/{raterID}/ratings", h.handleRatingsGiven)
		r.Get("/categories", h.handleListCategories)
		r.With(middleware.RequireAdmin).Post("/categories", h.handleAddCategory)
		r.With(middleware.RequireAdmin).Delete("/categories", h.handleRemoveCategory)
		r.Post("/sessions", h.handleSubmitSession)
	})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	isAdmin := middleware.IsAdmin(r.Context())
	board := h.Service.Leaderboard(r.Context())
	for i := range board {
		core.FilterEmployeeFields(&board[i].Employee, isAdmin)
	}
	api.Success(w, board, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	score, err := h.Service.EmployeeScore(r.Context(), urlID(r, "employeeID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "score_failed", sessionErrors...)
		return
	}
	api.Success(w, score, reqID)
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	points, err := h.Service.Trend(r.Context(), urlID(r, "employeeID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "trend_failed", sessionErrors...)
		return
	}
	api.Success(w, points, reqID)
}

func (h *Handler) handleRatingsReceived(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	ratings, err := h.Service.RatingsReceived(r.Context(), urlID(r, "employeeID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "ratings_failed", sessionErrors...)
		return
	}
	api.Success(w, ratings, reqID)
}

func (h *Handler) handleRatingsGiven(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, defaultHistoryLimit, maxHistoryLimit)
	items, total := h.Service.GivenRatings(r.Context(), urlID(r, "raterID"), page.Limit, page.Offset)
	api.Success(w, ratingPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Categories(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload categoryRequest
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	if err := h.Service.AddCategory(r.Context(), payload.Name); err != nil {
		shared.FailMapped(w, reqID, err, "category_create_failed", categoryErrors...)
		return
	}
	api.Created(w, h.Service.Categories(r.Context()), reqID)
}

// handleRemoveCategory takes the name from the query string since category
// names contain spaces.
func (h *Handler) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	name := r.URL.Query().Get("name")
	v.Required("name", name, "is required")
	if v.Reject(w, reqID) {
		return
	}
	if err := h.Service.RemoveCategory(r.Context(), name); err != nil {
		shared.FailMapped(w, reqID, err, "category_delete_failed", categoryErrors...)
		return
	}
	api.Success(w, h.Service.Categories(r.Context()), reqID)
}

func (h *Handler) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload performance.Session
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	if payload.IsAdmin && !middleware.IsAdmin(r.Context()) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "admin authentication required", reqID)
		return
	}
	if !payload.IsAdmin && payload.RaterID == "" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "raterId", Reason: "is required"}})
		return
	}

	result, err := h.Service.SubmitSession(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "session_failed", sessionErrors...)
		return
	}
	api.Created(w, result, reqID)
}

func urlID(r *http.Request, param string) document.ID {
	return document.ID(chi.URLParam(r, param))
}
