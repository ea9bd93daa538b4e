package performance

import "perftrack/internal/domain/document"

const (
	WeightAttendance = 0.5
	WeightAdmin      = 0.3
	WeightPeer       = 0.2

	// PerfectAttendance is reported when there is nothing to measure.
	PerfectAttendance = 3.0

	attendanceExcellent = 0.9
	attendanceGood      = 0.7
)

// RatingValue maps a rating label onto the 1-3 scale. Unknown labels score 0.
func RatingValue(label string) float64 {
	switch label {
	case document.RatingNeedsImprovement:
		return 1
	case document.RatingGood:
		return 2
	case document.RatingExcellent:
		return 3
	default:
		return 0
	}
}

func validRating(label string) bool {
	return RatingValue(label) > 0
}
