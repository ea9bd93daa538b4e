package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

func newTestService(t *testing.T) (*Service, *document.Store) {
	t.Helper()
	store := document.NewStore(document.NewFileBackend(t.TempDir(), "db.json"), zap.NewNop())
	return NewService(store, zap.NewNop()), store
}

func TestGenerateAvatar(t *testing.T) {
	assert.Equal(t, "bg-[#0277BD]", GenerateAvatar("Sarah"))
	assert.Equal(t, "bg-[#00897B]", GenerateAvatar("Ana Li"))
	assert.Equal(t, "bg-[#00796B]", GenerateAvatar("Ana"+"x"))
}

func TestAddEmployee(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	emp, err := svc.Add(ctx, EmployeeInput{Name: "  Ana  "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", emp.Name)
	assert.Nil(t, emp.Photo)
	assert.Equal(t, GenerateAvatar("Ana"), emp.Avatar)
	require.NotNil(t, emp.LeavesPerMonth)
	assert.Equal(t, 3.0, *emp.LeavesPerMonth)

	photo := "data:image/png;base64,AAAA"
	withPhoto, err := svc.Add(ctx, EmployeeInput{Name: "Ben", Photo: &photo, LeavesPerMonth: document.Float(2)})
	require.NoError(t, err)
	require.NotNil(t, withPhoto.Photo)
	assert.Equal(t, photo, *withPhoto.Photo)

	assert.Len(t, store.Load(ctx).Employees, 2)
}

func TestAddEmployeeValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, EmployeeInput{Name: " "})
	assert.ErrorIs(t, err, ErrNameRequired)

	bad := "file:///etc/passwd"
	_, err = svc.Add(ctx, EmployeeInput{Name: "Ana", Photo: &bad})
	assert.ErrorIs(t, err, ErrInvalidPhoto)

	huge := "data:image/png;base64," + strings.Repeat("A", maxPhotoLength)
	_, err = svc.Add(ctx, EmployeeInput{Name: "Ana", Photo: &huge})
	assert.ErrorIs(t, err, ErrPhotoTooLarge)

	_, err = svc.Add(ctx, EmployeeInput{Name: "Ana", LeavesPerMonth: document.Float(-1)})
	assert.ErrorIs(t, err, ErrInvalidAllowance)
}

func TestUpdateEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	photo := "https://example.com/ana.png"
	emp, err := svc.Add(ctx, EmployeeInput{Name: "Ana", Photo: &photo})
	require.NoError(t, err)

	name := "Ana Maria"
	empty := ""
	updated, err := svc.Update(ctx, emp.ID, EmployeeUpdate{Name: &name, Photo: &empty, LeavesPerMonth: document.Float(5)})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Nil(t, updated.Photo)
	assert.Equal(t, 5.0, *updated.LeavesPerMonth)
	assert.Equal(t, emp.Avatar, updated.Avatar)

	got, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = svc.Update(ctx, "missing", EmployeeUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestArchiveAndRestore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ana, err := svc.Add(ctx, EmployeeInput{Name: "Ana"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, EmployeeInput{Name: "Ben"})
	require.NoError(t, err)

	archived, err := svc.Archive(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	_, err = svc.Archive(ctx, ana.ID)
	assert.ErrorIs(t, err, ErrAlreadyArchived)

	assert.Len(t, svc.List(ctx, false), 1)
	assert.Len(t, svc.List(ctx, true), 2)

	restored, err := svc.Restore(ctx, ana.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)
	_, err = svc.Restore(ctx, ana.ID)
	assert.ErrorIs(t, err, ErrNotArchived)
	assert.Len(t, svc.List(ctx, false), 2)
}

func TestFilterEmployeeFields(t *testing.T) {
	emp := document.Employee{ID: "1", Name: "Ana", LeavesPerMonth: document.Float(4), IsArchived: true}

	admin := emp
	FilterEmployeeFields(&admin, true)
	assert.Equal(t, emp, admin)

	peer := emp
	FilterEmployeeFields(&peer, false)
	assert.Nil(t, peer.LeavesPerMonth)
	assert.False(t, peer.IsArchived)
	assert.Equal(t, "Ana", peer.Name)
}
