package leave

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

const maxRangeDays = 62

type Service struct {
	Store DocumentStore
	Log   *zap.Logger
}

func NewService(store DocumentStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: store, Log: log.Named("leave")}
}

// Month reports every active employee's allotment and usage for month.
func (s *Service) Month(ctx context.Context, month string) (MonthView, error) {
	if _, err := time.Parse(document.MonthLayout, month); err != nil {
		return MonthView{}, ErrInvalidMonth
	}
	doc := s.Store.Load(ctx)
	view := MonthView{Month: month, Employees: []EmployeeMonth{}}
	for _, emp := range doc.ActiveEmployees() {
		rec := findRecord(&doc, emp.ID, month)
		row := EmployeeMonth{
			Employee:   emp,
			Allocation: Allocation(emp, rec),
			LeaveDates: []string{},
		}
		if rec != nil {
			row.Taken = rec.LeavesTaken
			row.Notes = rec.Notes
			if rec.LeaveDates != nil {
				row.LeaveDates = rec.LeaveDates
			}
		}
		row.Remaining = row.Allocation - row.Taken
		view.Summary.TotalAllocated += row.Allocation
		view.Summary.TotalTaken += row.Taken
		if row.Taken < row.Allocation {
			view.Summary.EmployeesWithRemaining++
		}
		view.Employees = append(view.Employees, row)
	}
	view.Summary.Remaining = view.Summary.TotalAllocated - view.Summary.TotalTaken
	return view, nil
}

// EmployeeRecords lists every monthly record of one employee, in stored order.
func (s *Service) EmployeeRecords(ctx context.Context, employeeID document.ID) ([]document.MonthlyLeaveRecord, error) {
	doc := s.Store.Load(ctx)
	if _, ok := doc.Employee(employeeID); !ok {
		return nil, ErrEmployeeNotFound
	}
	out := []document.MonthlyLeaveRecord{}
	for _, rec := range doc.MonthlyLeaves {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Upsert replaces the employee's record for the month, creating it when
// missing. The replaced record keeps its id.
func (s *Service) Upsert(ctx context.Context, input RecordInput) (document.MonthlyLeaveRecord, error) {
	if _, err := time.Parse(document.MonthLayout, input.Month); err != nil {
		return document.MonthlyLeaveRecord{}, ErrInvalidMonth
	}
	if input.AllocatedLeaves != nil && *input.AllocatedLeaves < 0 {
		return document.MonthlyLeaveRecord{}, ErrInvalidAmount
	}
	var saved document.MonthlyLeaveRecord
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		emp, ok := doc.Employee(input.EmployeeID)
		if !ok || emp.IsArchived {
			return ErrEmployeeNotFound
		}
		rec := recordFor(doc, emp, input.Month)
		if input.AllocatedLeaves != nil {
			rec.AllocatedLeaves = document.Float(*input.AllocatedLeaves)
		}
		if input.LeavesTaken != nil {
			rec.LeavesTaken = max(0, *input.LeavesTaken)
		}
		if input.Notes != nil {
			rec.Notes = strings.TrimSpace(*input.Notes)
		}
		saved = upsert(doc, rec)
		return nil
	})
	return saved, err
}

// AddDate records a leave day. The month's leavesTaken becomes the number of
// recorded days.
func (s *Service) AddDate(ctx context.Context, employeeID document.ID, date string) (document.MonthlyLeaveRecord, error) {
	if _, err := time.Parse(document.DateLayout, date); err != nil {
		return document.MonthlyLeaveRecord{}, ErrInvalidDate
	}
	return s.changeDates(ctx, employeeID, date[:7], func(dates []string) ([]string, error) {
		return mergeDates(dates, date), nil
	})
}

func (s *Service) RemoveDate(ctx context.Context, employeeID document.ID, date string) (document.MonthlyLeaveRecord, error) {
	if _, err := time.Parse(document.DateLayout, date); err != nil {
		return document.MonthlyLeaveRecord{}, ErrInvalidDate
	}
	return s.changeDates(ctx, employeeID, date[:7], func(dates []string) ([]string, error) {
		kept := make([]string, 0, len(dates))
		for _, d := range dates {
			if d != date {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(dates) {
			return nil, ErrDateNotFound
		}
		return kept, nil
	})
}

// AddRange records every day from start to end inclusive, spread over the
// months the range touches.
func (s *Service) AddRange(ctx context.Context, employeeID document.ID, start, end string) ([]document.MonthlyLeaveRecord, error) {
	from, err := time.Parse(document.DateLayout, start)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(document.DateLayout, end)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dates, err := DatesInRange(from, to)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if len(dates) > maxRangeDays {
		return nil, ErrRangeTooLong
	}

	byMonth := map[string][]string{}
	var months []string
	for _, d := range dates {
		m := d[:7]
		if _, ok := byMonth[m]; !ok {
			months = append(months, m)
		}
		byMonth[m] = append(byMonth[m], d)
	}

	var saved []document.MonthlyLeaveRecord
	err = s.Store.Update(ctx, func(doc *document.Document) error {
		emp, ok := doc.Employee(employeeID)
		if !ok || emp.IsArchived {
			return ErrEmployeeNotFound
		}
		for _, m := range months {
			rec := recordFor(doc, emp, m)
			rec.LeaveDates = mergeDates(rec.LeaveDates, byMonth[m]...)
			rec.LeavesTaken = float64(len(rec.LeaveDates))
			saved = append(saved, upsert(doc, rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("leave range recorded",
		zap.String("employeeId", string(employeeID)),
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("days", len(dates)),
	)
	return saved, nil
}

func (s *Service) changeDates(ctx context.Context, employeeID document.ID, month string, change func([]string) ([]string, error)) (document.MonthlyLeaveRecord, error) {
	var saved document.MonthlyLeaveRecord
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		emp, ok := doc.Employee(employeeID)
		if !ok || emp.IsArchived {
			return ErrEmployeeNotFound
		}
		rec := recordFor(doc, emp, month)
		dates, err := change(rec.LeaveDates)
		if err != nil {
			return err
		}
		rec.LeaveDates = dates
		rec.LeavesTaken = float64(len(dates))
		saved = upsert(doc, rec)
		return nil
	})
	return saved, err
}

// recordFor returns a copy of the employee's record for month, or a fresh one
// whose allocation is pinned to the employee's current allowance.
func recordFor(doc *document.Document, emp document.Employee, month string) document.MonthlyLeaveRecord {
	if rec := findRecord(doc, emp.ID, month); rec != nil {
		out := *rec
		out.LeaveDates = append([]string(nil), rec.LeaveDates...)
		if out.AllocatedLeaves == nil {
			out.AllocatedLeaves = document.Float(emp.LeaveAllowance())
		}
		return out
	}
	return document.MonthlyLeaveRecord{
		ID:              document.NewID(),
		EmployeeID:      emp.ID,
		Month:           month,
		AllocatedLeaves: document.Float(emp.LeaveAllowance()),
	}
}

func upsert(doc *document.Document, rec document.MonthlyLeaveRecord) document.MonthlyLeaveRecord {
	for i := range doc.MonthlyLeaves {
		if doc.MonthlyLeaves[i].EmployeeID == rec.EmployeeID && doc.MonthlyLeaves[i].Month == rec.Month {
			doc.MonthlyLeaves[i] = rec
			return rec
		}
	}
	doc.MonthlyLeaves = append(doc.MonthlyLeaves, rec)
	return rec
}

func findRecord(doc *document.Document, employeeID document.ID, month string) *document.MonthlyLeaveRecord {
	for i := range doc.MonthlyLeaves {
		if doc.MonthlyLeaves[i].EmployeeID == employeeID && doc.MonthlyLeaves[i].Month == month {
			return &doc.MonthlyLeaves[i]
		}
	}
	return nil
}
