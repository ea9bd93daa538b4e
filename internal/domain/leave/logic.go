package leave

import (
	"errors"
	"sort"
	"time"

	"perftrack/internal/domain/document"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// DatesInRange lists every calendar day from start to end inclusive, formatted
// as YYYY-MM-DD.
func DatesInRange(start, end time.Time) ([]string, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, int(days))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(document.DateLayout))
	}
	return out, nil
}

// Allocation resolves the allotment for a month: the record's own override,
// then the employee's monthly allowance.
func Allocation(emp document.Employee, rec *document.MonthlyLeaveRecord) float64 {
	if rec != nil && rec.AllocatedLeaves != nil {
		return *rec.AllocatedLeaves
	}
	return emp.LeaveAllowance()
}

func mergeDates(dates []string, add ...string) []string {
	seen := make(map[string]bool, len(dates)+len(add))
	out := make([]string, 0, len(dates)+len(add))
	for _, d := range append(append([]string{}, dates...), add...) {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
