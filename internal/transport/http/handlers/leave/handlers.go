package leavehandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/document"
	"perftrack/internal/domain/leave"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service  *leave.Service
	Location *time.Location
}

func NewHandler(service *leave.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{Service: service, Location: loc}
}

var leaveErrors = []shared.ErrorRule{
	shared.NotFound(leave.ErrEmployeeNotFound, "employee_not_found"),
	shared.BadRequest(leave.ErrInvalidMonth, "invalid_month"),
	shared.BadRequest(leave.ErrInvalidDate, "invalid_date"),
	shared.BadRequest(leave.ErrInvalidRange, "invalid_range"),
	shared.BadRequest(leave.ErrRangeTooLong, "range_too_long"),
	shared.BadRequest(leave.ErrInvalidAmount, "invalid_amount"),
	shared.NotFound(leave.ErrDateNotFound, "date_not_found"),
}

type dateRequest struct {
	EmployeeID document.ID `json:"employeeId" validate:"required"`
	Date       string      `json:"date" validate:"required"`
}

type rangeRequest struct {
	EmployeeID document.ID `json:"employeeId" validate:"required"`
	Start      string      `json:"start" validate:"required"`
	End        string      `json:"end" validate:"required"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.handleMonth)
		r.Get("/employees/{employeeID}", h.handleEmployeeRecords)
		r.Put("/records", h.handleUpsert)
		r.Post("/dates", h.handleAddDate)
		r.Delete("/dates", h.handleRemoveDate)
		r.Post("/range", h.handleAddRange)
	})
}

// handleMonth defaults to the current month when ?month= is absent.
func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().In(h.Location).Format(document.MonthLayout)
	}
	view, err := h.Service.Month(r.Context(), month)
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_month_failed", leaveErrors...)
		return
	}
	api.Success(w, view, reqID)
}

func (h *Handler) handleEmployeeRecords(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	records, err := h.Service.EmployeeRecords(r.Context(), document.ID(chi.URLParam(r, "employeeID")))
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_records_failed", leaveErrors...)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload leave.RecordInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	rec, err := h.Service.Upsert(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_upsert_failed", leaveErrors...)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleAddDate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload dateRequest
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	rec, err := h.Service.AddDate(r.Context(), payload.EmployeeID, payload.Date)
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_date_failed", leaveErrors...)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleRemoveDate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	employeeID := r.URL.Query().Get("employeeId")
	date := r.URL.Query().Get("date")
	v.Required("employeeId", employeeID, "is required")
	v.Required("date", date, "is required")
	if v.Reject(w, reqID) {
		return
	}
	rec, err := h.Service.RemoveDate(r.Context(), document.ID(employeeID), date)
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_date_failed", leaveErrors...)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleAddRange(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload rangeRequest
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	start, okStart := v.Date("start", payload.Start)
	end, okEnd := v.Date("end", payload.End)
	if okStart && okEnd {
		v.DateOrder("start", start, "end", end)
	}
	if v.Reject(w, reqID) {
		return
	}
	records, err := h.Service.AddRange(r.Context(), payload.EmployeeID, start.Format(document.DateLayout), end.Format(document.DateLayout))
	if err != nil {
		shared.FailMapped(w, reqID, err, "leave_range_failed", leaveErrors...)
		return
	}
	api.Success(w, records, reqID)
}
