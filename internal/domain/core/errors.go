package core

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNameRequired     = errors.New("name required")
	ErrInvalidPhoto     = errors.New("photo must be an image data URL or http(s) URL")
	ErrPhotoTooLarge    = errors.New("photo too large")
	ErrInvalidAllowance = errors.New("leaves per month must be between 0 and 31")
	ErrAlreadyArchived  = errors.New("employee already archived")
	ErrNotArchived      = errors.New("employee is not archived")
)
