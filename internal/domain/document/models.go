package document

import "time"

const (
	RatingNeedsImprovement = "Needs Improvement"
	RatingGood             = "Good"
	RatingExcellent        = "Excellent"

	DefaultLeavesPerMonth = 3.0

	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var RatingValues = []string{RatingNeedsImprovement, RatingGood, RatingExcellent}

var DefaultCategories = []string{"Teamwork", "Communication", "Quality of Work", "Reliability"}

type Employee struct {
	ID             ID       `json:"id"`
	Name           string   `json:"name"`
	Photo          *string  `json:"photo"`
	Avatar         string   `json:"avatar"`
	LeavesPerMonth *float64 `json:"leavesPerMonth,omitempty"`
	IsArchived     bool     `json:"isArchived,omitempty"`
}

// LeaveAllowance returns the configured monthly allotment or the default.
func (e Employee) LeaveAllowance() float64 {
	if e.LeavesPerMonth != nil {
		return *e.LeavesPerMonth
	}
	return DefaultLeavesPerMonth
}

type Rating struct {
	ID              ID     `json:"id"`
	RaterID         ID     `json:"raterId"`
	RaterName       string `json:"raterName"`
	IsAdminRating   bool   `json:"isAdminRating"`
	RatedEmployeeID ID     `json:"ratedEmployeeId"`
	Category        string `json:"category"`
	Rating          string `json:"rating"`
	Feedback        string `json:"feedback,omitempty"`
	Timestamp       string `json:"timestamp"`
}

type TaskTemplate struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AssignedTo  *ID    `json:"assignedTo"`
	IsActive    bool   `json:"isActive"`
}

type DailyTask struct {
	ID          ID     `json:"id"`
	TemplateID  *ID    `json:"templateId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AssignedTo  ID     `json:"assignedTo"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type Rule struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type RuleViolation struct {
	ID           ID     `json:"id"`
	EmployeeID   ID     `json:"employeeId"`
	RuleID       ID     `json:"ruleId"`
	Date         string `json:"date"`
	ReportedBy   ID     `json:"reportedBy"`
	ReporterName string `json:"reporterName"`
	Notes        string `json:"notes,omitempty"`
	Timestamp    string `json:"timestamp"`
}

type TaskIncompleteReport struct {
	ID           ID     `json:"id"`
	TaskID       ID     `json:"taskId"`
	EmployeeID   ID     `json:"employeeId"`
	ReportedBy   ID     `json:"reportedBy"`
	ReporterName string `json:"reporterName"`
	Date         string `json:"date"`
	Timestamp    string `json:"timestamp"`
}

type MonthlyLeaveRecord struct {
	ID              ID       `json:"id"`
	EmployeeID      ID       `json:"employeeId"`
	Month           string   `json:"month"`
	AllocatedLeaves *float64 `json:"allocatedLeaves,omitempty"`
	LeavesTaken     float64  `json:"leavesTaken"`
	LeaveDates      []string `json:"leaveDates,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Timestamp formats t the way every persisted timestamp is written.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp; the zero time is returned
// for values that do not parse.
func ParseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func Float(v float64) *float64 {
	return &v
}
