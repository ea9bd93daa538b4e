package tasks

import "errors"

var (
	ErrTemplateNotFound = errors.New("task template not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNameRequired     = errors.New("name required")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrInvalidDate      = errors.New("invalid date")

	errNoChanges = errors.New("no changes")
)
