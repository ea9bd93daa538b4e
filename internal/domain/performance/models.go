package performance

import "perftrack/internal/domain/document"

type Score struct {
	Weighted          float64 `json:"weighted"`
	Admin             float64 `json:"admin"`
	Peer              float64 `json:"peer"`
	Attendance        float64 `json:"attendance"`
	HasAdminRating    bool    `json:"hasAdminRating"`
	HasPeerRating     bool    `json:"hasPeerRating"`
	HasAttendanceData bool    `json:"hasAttendanceData"`
}

type Standing struct {
	Rank     int               `json:"rank"`
	Employee document.Employee `json:"employee"`
	Score
}

// TrendPoint is one day of ratings received by an employee. Admin and Peer
// are nil when no rating of that kind was given that day.
type TrendPoint struct {
	Date     string   `json:"date"`
	Weighted float64  `json:"weighted"`
	Admin    *float64 `json:"admin"`
	Peer     *float64 `json:"peer"`
}

// Session is a batch of ratings submitted by one rater. Peer sessions may
// also carry task-incomplete reports and rule violations.
type Session struct {
	RaterID         document.ID       `json:"raterId"`
	IsAdmin         bool              `json:"isAdmin"`
	Entries         []SessionEntry    `json:"entries" validate:"required,min=1,dive"`
	IncompleteTasks []document.ID     `json:"incompleteTasks,omitempty"`
	Violations      []ViolationReport `json:"violations,omitempty" validate:"dive"`
}

type SessionEntry struct {
	EmployeeID document.ID       `json:"employeeId" validate:"required"`
	Ratings    map[string]string `json:"ratings" validate:"required"`
	Feedback   string            `json:"feedback,omitempty" validate:"max=2000"`
}

type ViolationReport struct {
	EmployeeID document.ID `json:"employeeId" validate:"required"`
	RuleID     document.ID `json:"ruleId" validate:"required"`
	Notes      string      `json:"notes,omitempty" validate:"max=2000"`
}

type SessionResult struct {
	Ratings     int    `json:"ratings"`
	TaskReports int    `json:"taskReports"`
	Violations  int    `json:"violations"`
	Timestamp   string `json:"timestamp"`
}
