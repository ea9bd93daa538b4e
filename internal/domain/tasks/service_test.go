package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

func newTestService(t *testing.T) (*Service, *document.Store) {
	t.Helper()
	store := document.NewStore(document.NewFileBackend(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, store.Update(context.Background(), func(doc *document.Document) error {
		doc.Employees = []document.Employee{
			{ID: "1", Name: "Ana"},
			{ID: "2", Name: "Ben", IsArchived: true},
		}
		return nil
	}))
	svc := NewService(store, zap.NewNop(), time.UTC)
	svc.Now = func() time.Time { return time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestAddTemplatePopulatesToday(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	tpl, err := svc.AddTemplate(ctx, TemplateInput{Name: " Open store ", AssignedTo: document.IDPtr("1")})
	require.NoError(t, err)
	assert.Equal(t, "Open store", tpl.Name)
	assert.True(t, tpl.IsActive)

	doc := store.Load(ctx)
	require.Len(t, doc.DailyTasks, 1)
	assert.Equal(t, "2025-03-14", doc.DailyTasks[0].Date)

	created, err := svc.AutoPopulate(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, store.Load(ctx).DailyTasks, 1)
}

func TestTemplateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTemplate(ctx, TemplateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = svc.AddTemplate(ctx, TemplateInput{Name: "Count", AssignedTo: document.IDPtr("2")})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)
	_, err = svc.ToggleTemplate(ctx, "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, svc.DeleteTemplate(ctx, "missing"), ErrTemplateNotFound)
}

func TestToggleAndDeleteTemplate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	inactive := false
	tpl, err := svc.AddTemplate(ctx, TemplateInput{Name: "Count", AssignedTo: document.IDPtr("1"), IsActive: &inactive})
	require.NoError(t, err)
	assert.Empty(t, store.Load(ctx).DailyTasks)

	toggled, err := svc.ToggleTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
	assert.Len(t, store.Load(ctx).DailyTasks, 1)

	require.NoError(t, svc.DeleteTemplate(ctx, tpl.ID))
	doc := store.Load(ctx)
	assert.Empty(t, doc.TaskTemplates)
	assert.Len(t, doc.DailyTasks, 1)
}

func TestAdHocTaskLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, TaskInput{Name: "Fix shelf", AssignedTo: "1"})
	require.NoError(t, err)
	assert.Nil(t, task.TemplateID)
	assert.Equal(t, "2025-03-14", task.Date)

	_, err = svc.AddTask(ctx, TaskInput{Name: "Fix shelf", AssignedTo: "1", Date: "14/03/2025"})
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = svc.AddTask(ctx, TaskInput{Name: "Fix shelf", AssignedTo: "2"})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)

	done, err := svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "2025-03-14T18:00:00.000Z", done.CompletedAt)

	undone, err := svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Empty(t, undone.CompletedAt)

	board, err := svc.Board(ctx, "")
	require.NoError(t, err)
	assert.Len(t, board.Tasks, 1)
	assert.Empty(t, board.Reports)

	other, err := svc.Board(ctx, "2025-03-13")
	require.NoError(t, err)
	assert.Empty(t, other.Tasks)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, task.ID), ErrTaskNotFound)
}
