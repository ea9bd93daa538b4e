package core

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

// A 5MB image is a little under 7MB once base64 encoded into a data URL.
const maxPhotoLength = 7 << 20

type Service struct {
	Store DocumentStore
	Log   *zap.Logger
}

func NewService(store DocumentStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: store, Log: log.Named("core")}
}

// List returns employees in document order; archived ones only when asked.
func (s *Service) List(ctx context.Context, includeArchived bool) []document.Employee {
	doc := s.Store.Load(ctx)
	if includeArchived {
		return doc.Employees
	}
	return doc.ActiveEmployees()
}

func (s *Service) Get(ctx context.Context, id document.ID) (document.Employee, error) {
	doc := s.Store.Load(ctx)
	emp, ok := doc.Employee(id)
	if !ok {
		return document.Employee{}, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) Add(ctx context.Context, input EmployeeInput) (document.Employee, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return document.Employee{}, ErrNameRequired
	}
	photo, err := normalizePhoto(input.Photo)
	if err != nil {
		return document.Employee{}, err
	}
	allowance := document.DefaultLeavesPerMonth
	if input.LeavesPerMonth != nil {
		allowance = *input.LeavesPerMonth
	}
	if allowance < 0 || allowance > 31 {
		return document.Employee{}, ErrInvalidAllowance
	}

	emp := document.Employee{
		ID:             document.NewID(),
		Name:           name,
		Photo:          photo,
		Avatar:         GenerateAvatar(name),
		LeavesPerMonth: document.Float(allowance),
	}
	err = s.Store.Update(ctx, func(doc *document.Document) error {
		doc.Employees = append(doc.Employees, emp)
		return nil
	})
	if err != nil {
		return document.Employee{}, err
	}
	s.Log.Info("employee added", zap.String("employeeId", string(emp.ID)))
	return emp, nil
}

func (s *Service) Update(ctx context.Context, id document.ID, input EmployeeUpdate) (document.Employee, error) {
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return document.Employee{}, ErrNameRequired
		}
	}
	var photo *string
	if input.Photo != nil {
		var err error
		if photo, err = normalizePhoto(input.Photo); err != nil {
			return document.Employee{}, err
		}
	}
	if input.LeavesPerMonth != nil && (*input.LeavesPerMonth < 0 || *input.LeavesPerMonth > 31) {
		return document.Employee{}, ErrInvalidAllowance
	}

	var updated document.Employee
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := doc.EmployeeIndex(id)
		if idx < 0 {
			return ErrEmployeeNotFound
		}
		emp := &doc.Employees[idx]
		if input.Name != nil {
			emp.Name = name
		}
		if input.Photo != nil {
			emp.Photo = photo
		}
		if input.LeavesPerMonth != nil {
			emp.LeavesPerMonth = document.Float(*input.LeavesPerMonth)
		}
		updated = *emp
		return nil
	})
	return updated, err
}

// Archive hides an employee from rating, task assignment and active lists.
// Their history stays in the document.
func (s *Service) Archive(ctx context.Context, id document.ID) (document.Employee, error) {
	return s.setArchived(ctx, id, true)
}

func (s *Service) Restore(ctx context.Context, id document.ID) (document.Employee, error) {
	return s.setArchived(ctx, id, false)
}

func (s *Service) setArchived(ctx context.Context, id document.ID, archived bool) (document.Employee, error) {
	var updated document.Employee
	err := s.Store.Update(ctx, func(doc *document.Document) error {
		idx := doc.EmployeeIndex(id)
		if idx < 0 {
			return ErrEmployeeNotFound
		}
		emp := &doc.Employees[idx]
		switch {
		case archived && emp.IsArchived:
			return ErrAlreadyArchived
		case !archived && !emp.IsArchived:
			return ErrNotArchived
		}
		emp.IsArchived = archived
		updated = *emp
		return nil
	})
	if err == nil {
		s.Log.Info("employee archive state changed", zap.String("employeeId", string(id)), zap.Bool("archived", archived))
	}
	return updated, err
}

func normalizePhoto(photo *string) (*string, error) {
	if photo == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*photo)
	if value == "" {
		return nil, nil
	}
	if len(value) > maxPhotoLength {
		return nil, ErrPhotoTooLarge
	}
	if !strings.HasPrefix(value, "data:image/") && !strings.HasPrefix(value, "https://") && !strings.HasPrefix(value, "http://") {
		return nil, ErrInvalidPhoto
	}
	return &value, nil
}
