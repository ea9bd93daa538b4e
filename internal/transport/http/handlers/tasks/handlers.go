package taskshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/document"
	"perftrack/internal/domain/tasks"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

var taskErrors = []shared.ErrorRule{
	shared.NotFound(tasks.ErrTemplateNotFound, "template_not_found"),
	shared.NotFound(tasks.ErrTaskNotFound, "task_not_found"),
	shared.NotFound(tasks.ErrAssigneeNotFound, "assignee_not_found"),
	shared.BadRequest(tasks.ErrNameRequired, "invalid_payload"),
	shared.BadRequest(tasks.ErrInvalidDate, "invalid_date"),
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.handleBoard)
		r.Post("/{taskID}/toggle", h.handleToggleTask)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.handleAddTask)
			r.Delete("/{taskID}", h.handleDeleteTask)
			r.Post("/autopopulate", h.handleAutoPopulate)
			r.Get("/templates", h.handleListTemplates)
			r.Post("/templates", h.handleAddTemplate)
			r.Put("/templates/{templateID}", h.handleUpdateTemplate)
			r.Post("/templates/{templateID}/toggle", h.handleToggleTemplate)
			r.Delete("/templates/{templateID}", h.handleDeleteTemplate)
		})
	})
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	board, err := h.Service.Board(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "task_board_failed", taskErrors...)
		return
	}
	api.Success(w, board, reqID)
}

func (h *Handler) handleAddTask(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload tasks.TaskInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	task, err := h.Service.AddTask(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "task_create_failed", taskErrors...)
		return
	}
	api.Created(w, task, reqID)
}

func (h *Handler) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	task, err := h.Service.ToggleTask(r.Context(), urlID(r, "taskID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "task_toggle_failed", taskErrors...)
		return
	}
	api.Success(w, task, reqID)
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteTask(r.Context(), urlID(r, "taskID")); err != nil {
		shared.FailMapped(w, reqID, err, "task_delete_failed", taskErrors...)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleAutoPopulate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	created, err := h.Service.AutoPopulate(r.Context())
	if err != nil {
		shared.FailMapped(w, reqID, err, "autopopulate_failed")
		return
	}
	api.Success(w, map[string]int{"created": created}, reqID)
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Templates(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload tasks.TemplateInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	tpl, err := h.Service.AddTemplate(r.Context(), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "template_create_failed", taskErrors...)
		return
	}
	api.Created(w, tpl, reqID)
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload tasks.TemplateInput
	if !shared.Bind(w, r, &payload, reqID) {
		return
	}
	tpl, err := h.Service.UpdateTemplate(r.Context(), urlID(r, "templateID"), payload)
	if err != nil {
		shared.FailMapped(w, reqID, err, "template_update_failed", taskErrors...)
		return
	}
	api.Success(w, tpl, reqID)
}

func (h *Handler) handleToggleTemplate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	tpl, err := h.Service.ToggleTemplate(r.Context(), urlID(r, "templateID"))
	if err != nil {
		shared.FailMapped(w, reqID, err, "template_toggle_failed", taskErrors...)
		return
	}
	api.Success(w, tpl, reqID)
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteTemplate(r.Context(), urlID(r, "templateID")); err != nil {
		shared.FailMapped(w, reqID, err, "template_delete_failed", taskErrors...)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func urlID(r *http.Request, param string) document.ID {
	return document.ID(chi.URLParam(r, param))
}
