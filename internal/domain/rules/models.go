package rules

import "perftrack/internal/domain/document"

type RuleInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	IsActive    *bool  `json:"isActive"`
}

// ViolationInput reports a rule violation. An empty ReportedBy means the
// administrator; Date defaults to today.
type ViolationInput struct {
	EmployeeID document.ID `json:"employeeId" validate:"required"`
	RuleID     document.ID `json:"ruleId" validate:"required"`
	ReportedBy document.ID `json:"reportedBy"`
	Date       string      `json:"date"`
	Notes      string      `json:"notes" validate:"max=2000"`
}

type Filter struct {
	Date       string
	EmployeeID document.ID
	RuleID     document.ID
}

type EmployeeCount struct {
	EmployeeID document.ID `json:"employeeId"`
	Name       string      `json:"name"`
	OnDate     int         `json:"onDate"`
	Total      int         `json:"total"`
}
