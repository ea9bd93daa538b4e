package reportshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/document"
	"perftrack/internal/domain/reports"
	"perftrack/internal/transport/http/middleware"
)

const secret = "reports-secret"

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	store := document.NewStore(document.NewFileBackend(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, store.Update(context.Background(), func(doc *document.Document) error {
		doc.Employees = []document.Employee{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Ben", IsArchived: true}}
		return nil
	}))
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Auth(secret))
	NewHandler(reports.NewService(store, time.UTC)).RegisterRoutes(r)
	return r
}

func TestDashboard(t *testing.T) {
	router := newRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data reports.Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.ActiveEmployees)
	assert.Equal(t, 1, env.Data.ArchivedEmployees)
	assert.Equal(t, len(document.DefaultCategories), env.Data.Categories)
}

func TestLeaderboardPDF(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/leaderboard.pdf", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := auth.GenerateToken(secret, time.Hour, time.Now())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/reports/leaderboard.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leaderboard-")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}
