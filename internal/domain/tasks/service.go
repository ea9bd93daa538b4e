package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

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
	return &Service{Store: store, Log: log.Named("tasks"), Location: loc, Now: time.Now}
}

func (s *Service) Today() string {
	return s.Now().In(s.Location).Format(document.DateLayout)
}

// AutoPopulate runs AutoPopulate against the stored document for today.
// Nothing is written when no task is due.
func (s *Service) AutoPopulate(ctx context.Context) (int, error) {
	today := s.Today()
	created := 0
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		created = AutoPopulate(doc, today)
		if created == 0 {
			return errNoChanges
		}
		return nil
	})
	if errors.Is(err, errNoChanges) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	s.Log.Info("daily tasks populated", zap.String("date", today), zap.Int("created", created))
	return created, nil
}

func (s *Service) Templates(ctx context.Context) []document.TaskTemplate {
	return s.Store.Load(ctx).TaskTemplates
}

func (s *Service) AddTemplate(ctx context.Context, input TemplateInput) (document.TaskTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return document.TaskTemplate{}, ErrNameRequired
	}
	tpl := document.TaskTemplate{
		ID:          document.NewID(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  input.AssignedTo,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	today := s.Today()
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		if err := checkAssignee(doc, tpl.AssignedTo); err != nil {
			return err
		}
		doc.TaskTemplates = append(doc.TaskTemplates, tpl)
		AutoPopulate(doc, today)
		return nil
	})
	if err != nil {
		return document.TaskTemplate{}, err
	}
	return tpl, nil
}

// UpdateTemplate replaces a template's fields. Tasks already generated from
// it are left alone.
func (s *Service) UpdateTemplate(ctx context.Context, id document.ID, input TemplateInput) (document.TaskTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return document.TaskTemplate{}, ErrNameRequired
	}
	today := s.Today()
	var updated document.TaskTemplate
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := templateIndex(doc, id)
		if idx < 0 {
			return ErrTemplateNotFound
		}
		if err := checkAssignee(doc, input.AssignedTo); err != nil {
			return err
		}
		tpl := &doc.TaskTemplates[idx]
		tpl.Name = name
		tpl.Description = strings.TrimSpace(input.Description)
		tpl.AssignedTo = input.AssignedTo
		if input.IsActive != nil {
			tpl.IsActive = *input.IsActive
		}
		updated = *tpl
		AutoPopulate(doc, today)
		return nil
	})
	return updated, err
}

func (s *Service) ToggleTemplate(ctx context.Context, id document.ID) (document.TaskTemplate, error) {
	today := s.Today()
	var updated document.TaskTemplate
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := templateIndex(doc, id)
		if idx < 0 {
			return ErrTemplateNotFound
		}
		doc.TaskTemplates[idx].IsActive = !doc.TaskTemplates[idx].IsActive
		updated = doc.TaskTemplates[idx]
		AutoPopulate(doc, today)
		return nil
	})
	return updated, err
}

// DeleteTemplate removes the template. Daily tasks it produced stay as history.
func (s *Service) DeleteTemplate(ctx context.Context, id document.ID) error {
	return s.Store.Update(ctx, func(doc *document.Document) error {
		idx := templateIndex(doc, id)
		if idx < 0 {
			return ErrTemplateNotFound
		}
		doc.TaskTemplates = append(doc.TaskTemplates[:idx:idx], doc.TaskTemplates[idx+1:]...)
		return nil
	})
}

// Board returns the tasks and incomplete reports for one day.
func (s *Service) Board(ctx context.Context, date string) (DayBoard, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(document.DateLayout, date); err != nil {
		return DayBoard{}, ErrInvalidDate
	}
	doc := s.Store.Load(ctx)
	board := DayBoard{
		Date:    date,
		Tasks:   []document.DailyTask{},
		Reports: []document.TaskIncompleteReport{},
	}
	for _, task := range doc.DailyTasks {
		if task.Date == date {
			board.Tasks = append(board.Tasks, task)
		}
	}
	for _, report := range doc.TaskIncompleteReports {
		if report.Date == date {
			board.Reports = append(board.Reports, report)
		}
	}
	return board, nil
}

func (s *Service) AddTask(ctx context.Context, input TaskInput) (document.DailyTask, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return document.DailyTask{}, ErrNameRequired
	}
	date := input.Date
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(document.DateLayout, date); err != nil {
		return document.DailyTask{}, ErrInvalidDate
	}
	task := document.DailyTask{
		ID:          document.NewID(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  input.AssignedTo,
		Date:        date,
	}
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		if err := checkAssignee(doc, &task.AssignedTo); err != nil {
			return err
		}
		doc.DailyTasks = append(doc.DailyTasks, task)
		return nil
	})
	if err != nil {
		return document.DailyTask{}, err
	}
	return task, nil
}

// ToggleTask flips completion; completedAt is set on completion and cleared
// otherwise.
func (s *Service) ToggleTask(ctx context.Context, id document.ID) (document.DailyTask, error) {
	stamp := document.Timestamp(s.Now())
	var updated document.DailyTask
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		for i := range doc.DailyTasks {
			task := &doc.DailyTasks[i]
			if task.ID != id {
				continue
			}
			task.Completed = !task.Completed
			task.CompletedAt = ""
			if task.Completed {
				task.CompletedAt = stamp
			}
			updated = *task
			return nil
		}
		return ErrTaskNotFound
	})
	return updated, err
}

func (s *Service) DeleteTask(ctx context.Context, id document.ID) error {
	return s.Store.Update(ctx, func(doc *document.Document) error {
		for i, task := range doc.DailyTasks {
			if task.ID == id {
				doc.DailyTasks = append(doc.DailyTasks[:i:i], doc.DailyTasks[i+1:]...)
				return nil
			}
		}
		return ErrTaskNotFound
	})
}

func checkAssignee(doc *document.Document, id *document.ID) error {
	if id == nil {
		return nil
	}
	emp, ok := doc.Employee(*id)
	if !ok || emp.IsArchived {
		return ErrAssigneeNotFound
	}
	return nil
}

func templateIndex(doc *document.Document, id document.ID) int {
	for i, tpl := range doc.TaskTemplates {
		if tpl.ID == id {
			return i
		}
	}
	return -1
}
