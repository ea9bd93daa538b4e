package performance

import (
	"sort"
	"time"

	"perftrack/internal/domain/document"
)

const unknownDate = "unknown"

// Trend groups the ratings an employee received by calendar day in loc.
// Each day's weighted value uses the admin and peer weights renormalized
// without attendance.
func Trend(employeeID document.ID, ratings []document.Rating, loc *time.Location) []TrendPoint {
	if loc == nil {
		loc = time.UTC
	}
	type bucket struct {
		adminSum, peerSum     float64
		adminCount, peerCount int
	}
	buckets := map[string]*bucket{}
	for _, r := range ratings {
		if r.RatedEmployeeID != employeeID {
			continue
		}
		day := unknownDate
		if ts := document.ParseTimestamp(r.Timestamp); !ts.IsZero() {
			day = ts.In(loc).Format(document.DateLayout)
		}
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		if r.IsAdminRating {
			b.adminSum += RatingValue(r.Rating)
			b.adminCount++
		} else {
			b.peerSum += RatingValue(r.Rating)
			b.peerCount++
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i] == unknownDate {
			return days[j] != unknownDate
		}
		if days[j] == unknownDate {
			return false
		}
		return days[i] < days[j]
	})

	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		point := TrendPoint{Date: day}
		var total, weights float64
		if b.adminCount > 0 {
			admin := b.adminSum / float64(b.adminCount)
			total += admin * WeightAdmin
			weights += WeightAdmin
			point.Admin = document.Float(round2(admin))
		}
		if b.peerCount > 0 {
			peer := b.peerSum / float64(b.peerCount)
			total += peer * WeightPeer
			weights += WeightPeer
			point.Peer = document.Float(round2(peer))
		}
		if weights > 0 {
			point.Weighted = round2(total / weights)
		}
		points = append(points, point)
	}
	return points
}
