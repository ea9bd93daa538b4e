package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := document.NewStore(document.NewFileBackend(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, store.Update(context.Background(), func(doc *document.Document) error {
		doc.Employees = []document.Employee{
			{ID: "1", Name: "Ana"},
			{ID: "2", Name: "Ben"},
			{ID: "3", Name: "Cy", IsArchived: true},
		}
		return nil
	}))
	svc := NewService(store, zap.NewNop(), time.UTC)
	svc.Now = func() time.Time { return time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestRuleLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rule, err := svc.AddRule(ctx, RuleInput{Name: " Punctuality "})
	require.NoError(t, err)
	assert.Equal(t, "Punctuality", rule.Name)
	assert.True(t, rule.IsActive)

	_, err = svc.AddRule(ctx, RuleInput{Name: ""})
	assert.ErrorIs(t, err, ErrNameRequired)

	toggled, err := svc.ToggleRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID})
	assert.ErrorIs(t, err, ErrRuleInactive)

	require.NoError(t, svc.DeleteRule(ctx, rule.ID))
	assert.Empty(t, svc.Rules(ctx))
	assert.ErrorIs(t, svc.DeleteRule(ctx, rule.ID), ErrRuleNotFound)
}

func TestReportViolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rule, err := svc.AddRule(ctx, RuleInput{Name: "Punctuality"})
	require.NoError(t, err)

	byAdmin, err := svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID, Notes: "late"})
	require.NoError(t, err)
	assert.Equal(t, document.AdminID, byAdmin.ReportedBy)
	assert.Equal(t, "Admin", byAdmin.ReporterName)
	assert.Equal(t, "2025-03-14", byAdmin.Date)
	assert.Equal(t, "2025-03-14T08:00:00.000Z", byAdmin.Timestamp)

	byPeer, err := svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID, ReportedBy: "2", Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "Ben", byPeer.ReporterName)

	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID, ReportedBy: "1"})
	assert.ErrorIs(t, err, ErrSelfReport)
	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "3", RuleID: rule.ID})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID, ReportedBy: "3"})
	assert.ErrorIs(t, err, ErrReporterNotFound)
	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: "nope"})
	assert.ErrorIs(t, err, ErrRuleNotFound)
	_, err = svc.Report(ctx, ViolationInput{EmployeeID: "1", RuleID: rule.ID, Date: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Len(t, svc.Violations(ctx, Filter{}), 2)
	assert.Len(t, svc.Violations(ctx, Filter{Date: "2025-03-14"}), 1)
	assert.Len(t, svc.Violations(ctx, Filter{EmployeeID: "2"}), 0)

	counts := svc.Counts(ctx, "")
	require.Len(t, counts, 2)
	assert.Equal(t, EmployeeCount{EmployeeID: "1", Name: "Ana", OnDate: 1, Total: 2}, counts[0])
	assert.Equal(t, EmployeeCount{EmployeeID: "2", Name: "Ben"}, counts[1])

	require.NoError(t, svc.DeleteViolation(ctx, byPeer.ID))
	assert.ErrorIs(t, svc.DeleteViolation(ctx, byPeer.ID), ErrViolationNotFound)
}
