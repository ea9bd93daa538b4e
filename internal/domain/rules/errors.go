package rules

import "errors"

var (
	ErrRuleNotFound      = errors.New("rule not found")
	ErrRuleInactive      = errors.New("rule is inactive")
	ErrViolationNotFound = errors.New("violation not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrReporterNotFound  = errors.New("reporter not found")
	ErrSelfReport        = errors.New("employees cannot report themselves")
	ErrNameRequired      = errors.New("name required")
	ErrInvalidDate       = errors.New("invalid date")
)
