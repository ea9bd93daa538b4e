package ruleshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/document"
	"perftrack/internal/domain/rules"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *rules.Service
}

func NewHandler(service *rules.Service) *Handler {
	return &Handler{Service: service}
}

var ruleErrors = []shared.ErrorRule{
	shared.NotFound(rules.ErrRuleNotFound, "rule_not_found"),
	shared.Conflict(rules.ErrRuleInactive, "rule_inactive"),
	shared.NotFound(rules.ErrViolationNotFound, "violation_not_found"),
	shared.NotFound(rules.ErrEmployeeNotFound, "employee_not_found"),
	shared.NotFound(rules.ErrReporterNotFound, "reporter_not_found"),
	shared.BadRequest(rules.ErrSelfReport, "self_report"),
	shared.BadRequest(rules.ErrNameRequired, "invalid_payload"),
	shared.BadRequest(rules.ErrInvalidDate, "invalid_date"),
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rules", func(r chi.Router) {
		r.Get("/", h.handleListRules)
		r.Get("/violations", h.handleListViolations)
		r.Get("/violations/counts", h.handleCounts)
		r.Post("/violations", h.handleReport)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.handleAddRule)
			r.Post("/{ruleID}/toggle", h.handleToggleRule)
			r.Delete("/{ruleID}", h.handleDeleteRule)
			r.Delete("/violations/{violationID}", h.handleDeleteViolation)
		})
	})
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Rules(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddRule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload rules.RuleInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	rule, err := h.Service.AddRule(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "rule_create_failed", ruleErrors...)
		return
	}
	api.Created(w, rule, reqID)
}

func (h *Handler) handleToggleRule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rule, err := h.Service.ToggleRule(r.Context(), urlID(r, "ruleID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "rule_toggle_failed", ruleErrors...)
		return
	}
	api.Success(w, rule, reqID)
}

func (h *Handler) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteRule(r.Context(), urlID(r, "ruleID")); err != nil {
		shared.FailMapped(w, reqID, err, "rule_delete_failed", ruleErrors...)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleListViolations(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	date, ok := shared.QueryDate(w, r, "date", reqID)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := rules.Filter{
		Date:       date,
		EmployeeID: document.ID(q.Get("employeeId")),
		RuleID:     document.ID(q.Get("ruleId")),
	}
	api.Success(w, h.Service.Violations(r.Context(), filter), reqID)
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	date, ok := shared.QueryDate(w, r, "date", reqID)
	if !ok {
		return
	}
	api.Success(w, h.Service.Counts(r.Context(), date), reqID)
}

// handleReport files a violation. Only an authenticated administrator may
// report as the administrator; everyone else must name themselves.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload rules.ViolationInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	if (payload.ReportedBy == "" || payload.ReportedBy.IsAdmin()) && !middleware.IsAdmin(r.Context()) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "admin authentication required", reqID)
		return
	}
	violation, err := h.Service.Report(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "violation_report_failed", ruleErrors...)
		return
	}
	api.Created(w, violation, reqID)
}

func (h *Handler) handleDeleteViolation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteViolation(r.Context(), urlID(r, "violationID")); err != nil {
		shared.FailMapped(w, reqID, err, "violation_delete_failed", ruleErrors...)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func urlID(r *http.Request, param string) document.ID {
	return document.ID(chi.URLParam(r, param))
}
