package leave

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrRangeTooLong     = errors.New("date range too long")
	ErrInvalidAmount    = errors.New("leave amounts must not be negative")
	ErrDateNotFound     = errors.New("leave date not recorded")
)
