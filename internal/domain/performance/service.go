package performance

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

const adminRaterName = "Admin"

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
	return &Service{Store: store, Log: log.Named("performance"), Location: loc, Now: time.Now}
}

func (s *Service) Leaderboard(ctx context.Context) []Standing {
	return Leaderboard(s.Store.Load(ctx))
}

func (s *Service) EmployeeScore(ctx context.Context, employeeID document.ID) (Score, error) {
	doc := s.Store.Load(ctx)
	emp, ok := doc.Employee(employeeID)
	if !ok {
		return Score{}, ErrEmployeeNotFound
	}
	return ScoreEmployee(doc, emp), nil
}

func (s *Service) Trend(ctx context.Context, employeeID document.ID) ([]TrendPoint, error) {
	doc := s.Store.Load(ctx)
	if _, ok := doc.Employee(employeeID); !ok {
		return nil, ErrEmployeeNotFound
	}
	return Trend(employeeID, doc.Ratings, s.Location), nil
}

// RatingsReceived lists the ratings an employee received, newest first.
func (s *Service) RatingsReceived(ctx context.Context, employeeID document.ID) ([]document.Rating, error) {
	doc := s.Store.Load(ctx)
	if _, ok := doc.Employee(employeeID); !ok {
		return nil, ErrEmployeeNotFound
	}
	out := []document.Rating{}
	for _, r := range doc.Ratings {
		if r.RatedEmployeeID == employeeID {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// GivenRatings pages through the ratings submitted by raterID, newest first,
// and returns the total before paging. raterID may be document.AdminID. A
// non-positive limit returns everything from offset on.
func (s *Service) GivenRatings(ctx context.Context, raterID document.ID, limit, offset int) ([]document.Rating, int) {
	doc := s.Store.Load(ctx)
	given := []document.Rating{}
	for _, r := range doc.Ratings {
		if r.RaterID == raterID {
			given = append(given, r)
		}
	}
	sortNewestFirst(given)
	total := len(given)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []document.Rating{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return given[offset:end], total
}

func (s *Service) Categories(ctx context.Context) []string {
	return s.Store.Load(ctx).Categories
}

func (s *Service) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryRequired
	}
	return s.Store.Update(ctx, func(doc *document.Document) error {
		if doc.HasCategory(name) {
			return ErrCategoryExists
		}
		doc.Categories = append(doc.Categories, name)
		return nil
	})
}

// RemoveCategory drops a category from the active set. Ratings recorded
// under it are kept.
func (s *Service) RemoveCategory(ctx context.Context, name string) error {
	return s.Store.Update(ctx, func(doc *document.Document) error {
		kept := make([]string, 0, len(doc.Categories))
		for _, c := range doc.Categories {
			if c != name {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(doc.Categories) {
			return ErrCategoryNotFound
		}
		doc.Categories = kept
		return nil
	})
}

// SubmitSession validates a rating session against the current document and
// records its ratings, and for peer sessions its reports, with one shared
// timestamp. Nothing is written when any part is invalid.
func (s *Service) SubmitSession(ctx context.Context, session Session) (SessionResult, error) {
	now := s.Now()
	stamp := document.Timestamp(now)
	today := now.In(s.Location).Format(document.DateLayout)

	var result SessionResult
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		res, err := applySession(doc, session, stamp, today)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return SessionResult{}, err
	}
	s.Log.Info("rating session recorded",
		zap.String("raterId", string(session.RaterID)),
		zap.Bool("admin", session.IsAdmin),
		zap.Int("ratings", result.Ratings),
		zap.Int("taskReports", result.TaskReports),
		zap.Int("violations", result.Violations),
	)
	return result, nil
}

func applySession(doc *document.Document, session Session, stamp, today string) (SessionResult, error) {
	raterID := document.AdminID
	raterName := adminRaterName
	if session.IsAdmin {
		if len(session.IncompleteTasks) > 0 || len(session.Violations) > 0 {
			return SessionResult{}, ErrAdminReport
		}
	} else {
		rater, ok := doc.Employee(session.RaterID)
		if !ok || rater.IsArchived || session.RaterID.IsAdmin() {
			return SessionResult{}, ErrRaterNotFound
		}
		raterID = rater.ID
		raterName = rater.Name
	}
	if len(session.Entries) == 0 {
		return SessionResult{}, ErrEmptySession
	}

	var ratings []document.Rating
	seen := map[document.ID]bool{}
	for _, entry := range session.Entries {
		target, ok := doc.Employee(entry.EmployeeID)
		if !ok || target.IsArchived {
			return SessionResult{}, ErrEmployeeNotFound
		}
		if !session.IsAdmin && target.ID == raterID {
			return SessionResult{}, ErrSelfRating
		}
		if seen[target.ID] {
			return SessionResult{}, ErrDuplicateTarget
		}
		seen[target.ID] = true

		for category, value := range entry.Ratings {
			if !doc.HasCategory(category) {
				return SessionResult{}, ErrUnknownCategory
			}
			if !validRating(value) {
				return SessionResult{}, ErrInvalidRating
			}
		}
		for _, category := range doc.Categories {
			value, ok := entry.Ratings[category]
			if !ok {
				return SessionResult{}, ErrIncompleteRatings
			}
			ratings = append(ratings, document.Rating{
				ID:              document.NewID(),
				RaterID:         raterID,
				RaterName:       raterName,
				IsAdminRating:   session.IsAdmin,
				RatedEmployeeID: target.ID,
				Category:        category,
				Rating:          value,
				Feedback:        strings.TrimSpace(entry.Feedback),
				Timestamp:       stamp,
			})
		}
	}

	var reports []document.TaskIncompleteReport
	for _, taskID := range session.IncompleteTasks {
		task, ok := findTask(doc, taskID)
		if !ok {
			return SessionResult{}, ErrTaskNotFound
		}
		if task.AssignedTo == raterID {
			return SessionResult{}, ErrSelfReport
		}
		reports = append(reports, document.TaskIncompleteReport{
			ID:           document.NewID(),
			TaskID:       task.ID,
			EmployeeID:   task.AssignedTo,
			ReportedBy:   raterID,
			ReporterName: raterName,
			Date:         task.Date,
			Timestamp:    stamp,
		})
	}

	var violations []document.RuleViolation
	for _, v := range session.Violations {
		if !activeRule(doc, v.RuleID) {
			return SessionResult{}, ErrRuleNotFound
		}
		emp, ok := doc.Employee(v.EmployeeID)
		if !ok || emp.IsArchived {
			return SessionResult{}, ErrEmployeeNotFound
		}
		if emp.ID == raterID {
			return SessionResult{}, ErrSelfReport
		}
		violations = append(violations, document.RuleViolation{
			ID:           document.NewID(),
			EmployeeID:   emp.ID,
			RuleID:       v.RuleID,
			Date:         today,
			ReportedBy:   raterID,
			ReporterName: raterName,
			Notes:        strings.TrimSpace(v.Notes),
			Timestamp:    stamp,
		})
	}

	doc.Ratings = append(doc.Ratings, ratings...)
	doc.TaskIncompleteReports = append(doc.TaskIncompleteReports, reports...)
	doc.Violations = append(doc.Violations, violations...)
	return SessionResult{
		Ratings:     len(ratings),
		TaskReports: len(reports),
		Violations:  len(violations),
		Timestamp:   stamp,
	}, nil
}

func findTask(doc *document.Document, id document.ID) (document.DailyTask, bool) {
	for _, task := range doc.DailyTasks {
		if task.ID == id {
			return task, true
		}
	}
	return document.DailyTask{}, false
}

func activeRule(doc *document.Document, id document.ID) bool {
	for _, rule := range doc.Rules {
		if rule.ID == id {
			return rule.IsActive
		}
	}
	return false
}

func sortNewestFirst(ratings []document.Rating) {
	sort.SliceStable(ratings, func(i, j int) bool {
		return document.ParseTimestamp(ratings[i].Timestamp).After(document.ParseTimestamp(ratings[j].Timestamp))
	})
}
