package leave

import "perftrack/internal/domain/document"

// RecordInput upserts one employee's month. Nil fields keep the values of the
// record being replaced.
type RecordInput struct {
	EmployeeID      document.ID `json:"employeeId" validate:"required"`
	Month           string      `json:"month" validate:"required"`
	AllocatedLeaves *float64    `json:"allocatedLeaves" validate:"omitempty,min=0,max=31"`
	LeavesTaken     *float64    `json:"leavesTaken" validate:"omitempty,max=31"`
	Notes           *string     `json:"notes" validate:"omitempty,max=2000"`
}

type EmployeeMonth struct {
	Employee   document.Employee `json:"employee"`
	Allocation float64           `json:"allocation"`
	Taken      float64           `json:"taken"`
	Remaining  float64           `json:"remaining"`
	LeaveDates []string          `json:"leaveDates"`
	Notes      string            `json:"notes,omitempty"`
}

type Summary struct {
	TotalAllocated         float64 `json:"totalAllocated"`
	TotalTaken             float64 `json:"totalTaken"`
	Remaining              float64 `json:"remaining"`
	EmployeesWithRemaining int     `json:"employeesWithRemaining"`
}

type MonthView struct {
	Month     string          `json:"month"`
	Employees []EmployeeMonth `json:"employees"`
	Summary   Summary         `json:"summary"`
}
