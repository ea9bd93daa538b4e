package corehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/core"
	"perftrack/internal/domain/document"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

var employeeErrors = []shared.ErrorRule{
	shared.NotFound(core.ErrEmployeeNotFound, "employee_not_found"),
	shared.BadRequest(core.ErrNameRequired, "invalid_payload"),
	shared.BadRequest(core.ErrInvalidPhoto, "invalid_photo"),
	shared.BadRequest(core.ErrPhotoTooLarge, "photo_too_large"),
	shared.BadRequest(core.ErrInvalidAllowance, "invalid_payload"),
	shared.Conflict(core.ErrAlreadyArchived, "already_archived"),
	shared.Conflict(core.ErrNotArchived, "not_archived"),
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.handleCreate)
			r.Put("/{employeeID}", h.handleUpdate)
			r.Post("/{employeeID}/archive", h.handleArchive)
			r.Post("/{employeeID}/restore", h.handleRestore)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	isAdmin := middleware.IsAdmin(r.Context())
	includeArchived := isAdmin && r.URL.Query().Get("includeArchived") == "true"

	employees := h.Service.List(r.Context(), includeArchived)
	out := make([]document.Employee, 0, len(employees))
	for _, emp := range employees {
		core.FilterEmployeeFields(&emp, isAdmin)
		out = append(out, emp)
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())
	emp, err := h.Service.Get(r.Context(), employeeID(r))
	if err == nil && emp.IsArchived && !isAdmin {
		err = core.ErrEmployeeNotFound
	}
	if err != nil {
		shared.FailMapped(w, reqID, err, "employee_lookup_failed", employeeErrors...)
		return
	}
	core.FilterEmployeeFields(&emp, isAdmin)
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload core.EmployeeInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	emp, err := h.Service.Add(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "employee_create_failed", employeeErrors...)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload core.EmployeeUpdate
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	emp, err := h.Service.Update(r.Context(), employeeID(r), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "employee_update_failed", employeeErrors...)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Archive(r.Context(), employeeID(r))
	if err != nil {
		shared.FailMapped(w, reqID, err, "employee_archive_failed", employeeErrors...)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Restore(r.Context(), employeeID(r))
	if err != nil {
		shared.FailMapped(w, reqID, err, "employee_restore_failed", employeeErrors...)
		return
	}
	api.Success(w, emp, reqID)
}

func employeeID(r *http.Request) document.ID {
	return document.ID(chi.URLParam(r, "employeeID"))
}
