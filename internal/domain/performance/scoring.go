package performance

import (
	"sort"

	"github.com/shopspring/decimal"

	"perftrack/internal/domain/document"
)

// ComputeScore blends attendance, admin ratings and peer ratings for one
// employee. Components without data are left out and the remaining weights
// are renormalized, so the result stays on the 1-3 scale. leavesPerMonth is
// the employee's allotment, used for records without their own allocation.
func ComputeScore(employeeID document.ID, ratings []document.Rating, leaves []document.MonthlyLeaveRecord, leavesPerMonth float64) Score {
	attendance, hasAttendance := attendanceComponent(employeeID, leaves, leavesPerMonth)

	var adminSum, peerSum float64
	var adminCount, peerCount int
	for _, r := range ratings {
		if r.RatedEmployeeID != employeeID {
			continue
		}
		if r.IsAdminRating {
			adminSum += RatingValue(r.Rating)
			adminCount++
		} else {
			peerSum += RatingValue(r.Rating)
			peerCount++
		}
	}

	score := Score{
		Attendance:        attendance,
		HasAttendanceData: hasAttendance,
		HasAdminRating:    adminCount > 0,
		HasPeerRating:     peerCount > 0,
	}

	total := attendance * WeightAttendance
	weights := WeightAttendance
	if score.HasAdminRating {
		score.Admin = adminSum / float64(adminCount)
		total += score.Admin * WeightAdmin
		weights += WeightAdmin
	}
	if score.HasPeerRating {
		score.Peer = peerSum / float64(peerCount)
		total += score.Peer * WeightPeer
		weights += WeightPeer
	}
	score.Weighted = total / weights

	score.Weighted = round2(score.Weighted)
	score.Admin = round2(score.Admin)
	score.Peer = round2(score.Peer)
	score.Attendance = round2(score.Attendance)
	return score
}

// AttendanceScore maps allocated and taken leave onto the 1-3 scale.
func AttendanceScore(allocated, taken float64) float64 {
	if allocated <= 0 {
		return PerfectAttendance
	}
	pct := (allocated - taken) / allocated
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	switch {
	case pct >= attendanceExcellent:
		return 3
	case pct >= attendanceGood:
		return 2
	default:
		return 1
	}
}

func attendanceComponent(employeeID document.ID, leaves []document.MonthlyLeaveRecord, leavesPerMonth float64) (float64, bool) {
	var allocated, taken float64
	found := false
	for _, rec := range leaves {
		if rec.EmployeeID != employeeID {
			continue
		}
		found = true
		if rec.AllocatedLeaves != nil {
			allocated += *rec.AllocatedLeaves
		} else {
			allocated += leavesPerMonth
		}
		taken += rec.LeavesTaken
	}
	if !found {
		return PerfectAttendance, false
	}
	return AttendanceScore(allocated, taken), true
}

// ScoreEmployee scores emp against the whole document.
func ScoreEmployee(doc document.Document, emp document.Employee) Score {
	return ComputeScore(emp.ID, doc.Ratings, doc.MonthlyLeaves, emp.LeaveAllowance())
}

// Leaderboard ranks active employees by weighted score, highest first.
// Ties keep document order.
func Leaderboard(doc document.Document) []Standing {
	active := doc.ActiveEmployees()
	standings := make([]Standing, 0, len(active))
	for _, emp := range active {
		standings = append(standings, Standing{Employee: emp, Score: ScoreEmployee(doc, emp)})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Weighted > standings[j].Weighted
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
