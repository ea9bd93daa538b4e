package rules

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

const adminReporterName = "Admin"

type Service struct {
	Store    DocumentStore
	Log      *zap.Logger
	Location *time.Location
	Now      func() time.Time
}

func NewService(store DocumentStore, log *zap.Logger, loc *time.Location) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{Store: store, Log: log.Named("rules"), Location: loc, Now: time.Now}
}

func (s *Service) Rules(ctx context.Context) []document.Rule {
	return s.Store.Load(ctx).Rules
}

func (s *Service) AddRule(ctx context.Context, input RuleInput) (document.Rule, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return document.Rule{}, ErrNameRequired
	}
	rule := document.Rule{
		ID:          document.NewID(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		doc.Rules = append(doc.Rules, rule)
		return nil
	})
	if err != nil {
		return document.Rule{}, err
	}
	return rule, nil
}

func (s *Service) ToggleRule(ctx context.Context, id document.ID) (document.Rule, error) {
	var updated document.Rule
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := ruleIndex(doc, id)
		if idx < 0 {
			return ErrRuleNotFound
		}
		doc.Rules[idx].IsActive = !doc.Rules[idx].IsActive
		updated = doc.Rules[idx]
		return nil
	})
	return updated, err
}

// DeleteRule removes the rule. Violations recorded against it are kept.
func (s *Service) DeleteRule(ctx context.Context, id document.ID) error {
	return s.Store.Update(ctx, func(doc *document.Document) error {
		idx := ruleIndex(doc, id)
		if idx < 0 {
			return ErrRuleNotFound
		}
		doc.Rules = append(doc.Rules[:idx:idx], doc.Rules[idx+1:]...)
		return nil
	})
}

func (s *Service) Report(ctx context.Context, input ViolationInput) (document.RuleViolation, error) {
	now := s.Now()
	date := input.Date
	if date == "" {
		date = now.In(s.Location).Format(document.DateLayout)
	}
	if _, err := time.Parse(document.DateLayout, date); err != nil {
		return document.RuleViolation{}, ErrInvalidDate
	}

	var saved document.RuleViolation
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := ruleIndex(doc, input.RuleID)
		if idx < 0 {
			return ErrRuleNotFound
		}
		if !doc.Rules[idx].IsActive {
			return ErrRuleInactive
		}
		emp, ok := doc.Employee(input.EmployeeID)
		if !ok || emp.IsArchived {
			return ErrEmployeeNotFound
		}

		reporterID := document.AdminID
		reporterName := adminReporterName
		if input.ReportedBy != "" && !input.ReportedBy.IsAdmin() {
			reporter, ok := doc.Employee(input.ReportedBy)
			if !ok || reporter.IsArchived {
				return ErrReporterNotFound
			}
			if reporter.ID == emp.ID {
				return ErrSelfReport
			}
			reporterID = reporter.ID
			reporterName = reporter.Name
		}

		saved = document.RuleViolation{
			ID:           document.NewID(),
			EmployeeID:   emp.ID,
			RuleID:       input.RuleID,
			Date:         date,
			ReportedBy:   reporterID,
			ReporterName: reporterName,
			Notes:        strings.TrimSpace(input.Notes),
			Timestamp:    document.Timestamp(now),
		}
		doc.Violations = append(doc.Violations, saved)
		return nil
	})
	if err != nil {
		return document.RuleViolation{}, err
	}
	return saved, nil
}

func (s *Service) DeleteViolation(ctx context.Context, id document.ID) error {
	return s.Store.Update(ctx, func(doc *document.Document) error {
		for i, v := range doc.Violations {
			if v.ID == id {
				doc.Violations = append(doc.Violations[:i:i], doc.Violations[i+1:]...)
				return nil
			}
		}
		return ErrViolationNotFound
	})
}

// Violations lists violations matching every non-empty filter field.
func (s *Service) Violations(ctx context.Context, filter Filter) []document.RuleViolation {
	doc := s.Store.Load(ctx)
	out := []document.RuleViolation{}
	for _, v := range doc.Violations {
		if filter.Date != "" && v.Date != filter.Date {
			continue
		}
		if filter.EmployeeID != "" && v.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.RuleID != "" && v.RuleID != filter.RuleID {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Counts tallies violations per active employee, on date and overall.
func (s *Service) Counts(ctx context.Context, date string) []EmployeeCount {
	if date == "" {
		date = s.Now().In(s.Location).Format(document.DateLayout)
	}
	doc := s.Store.Load(ctx)
	active := doc.ActiveEmployees()
	index := make(map[document.ID]int, len(active))
	counts := make([]EmployeeCount, len(active))
	for i, emp := range active {
		index[emp.ID] = i
		counts[i] = EmployeeCount{EmployeeID: emp.ID, Name: emp.Name}
	}
	for _, v := range doc.Violations {
		i, ok := index[v.EmployeeID]
		if !ok {
			continue
		}
		counts[i].Total++
		if v.Date == date {
			counts[i].OnDate++
		}
	}
	return counts
}

func ruleIndex(doc *document.Document, id document.ID) int {
	for i, rule := range doc.Rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}
