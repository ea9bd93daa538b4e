package tasks

import "perftrack/internal/domain/document"

type TemplateInput struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Description string       `json:"description" validate:"max=2000"`
	AssignedTo  *document.ID `json:"assignedTo"`
	IsActive    *bool        `json:"isActive"`
}

// TaskInput describes an ad-hoc task not generated from a template. Date
// defaults to today.
type TaskInput struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	AssignedTo  document.ID `json:"assignedTo" validate:"required"`
	Date        string      `json:"date"`
}

type DayBoard struct {
	Date    string                          `json:"date"`
	Tasks   []document.DailyTask            `json:"tasks"`
	Reports []document.TaskIncompleteReport `json:"reports"`
}
