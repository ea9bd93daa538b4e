package reports

import "perftrack/internal/domain/performance"

type Dashboard struct {
	Date                   string                `json:"date"`
	ActiveEmployees        int                   `json:"activeEmployees"`
	ArchivedEmployees      int                   `json:"archivedEmployees"`
	Categories             int                   `json:"categories"`
	RatingsTotal           int                   `json:"ratingsTotal"`
	AdminRatings           int                   `json:"adminRatings"`
	PeerRatings            int                   `json:"peerRatings"`
	TasksToday             int                   `json:"tasksToday"`
	TasksCompletedToday    int                   `json:"tasksCompletedToday"`
	IncompleteReportsToday int                   `json:"incompleteReportsToday"`
	ActiveRules            int                   `json:"activeRules"`
	ViolationsToday        int                   `json:"violationsToday"`
	LeavesTakenThisMonth   float64               `json:"leavesTakenThisMonth"`
	TopPerformer           *performance.Standing `json:"topPerformer"`
}
