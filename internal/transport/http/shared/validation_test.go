package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEntry struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

type samplePayload struct {
	Name    string        `json:"name" validate:"required,max=5"`
	Count   *float64      `json:"count" validate:"omitempty,min=0,max=31"`
	Entries []sampleEntry `json:"entries" validate:"required,min=1,dive"`
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	count := 40.0
	v := NewValidator()
	v.Struct(samplePayload{Name: "toolong", Count: &count, Entries: []sampleEntry{{}}})

	issues := v.Issues()
	require.Len(t, issues, 3)
	assert.Equal(t, ValidationIssue{Field: "count", Reason: "must be at most 31"}, issues[0])
	assert.Equal(t, ValidationIssue{Field: "entries[0].employeeId", Reason: "is required"}, issues[1])
	assert.Equal(t, ValidationIssue{Field: "name", Reason: "must be at most 5 characters"}, issues[2])
}

func TestValidatorStructValid(t *testing.T) {
	v := NewValidator()
	v.Struct(samplePayload{Name: "ok", Entries: []sampleEntry{{EmployeeID: "1"}}})
	assert.False(t, v.HasIssues())
	assert.Nil(t, v.Issues())
}

func TestValidatorRequiredAndDateOrder(t *testing.T) {
	v := NewValidator()
	v.Required("month", "  ", "is required")
	start, ok := v.Date("from", "2024-03-10")
	require.True(t, ok)
	end, ok := v.Date("to", "2024-03-01")
	require.True(t, ok)
	v.DateOrder("from", start, "to", end)
	_, ok = v.Date("other", "03/10/2024")
	assert.False(t, ok)

	fields := []string{}
	for _, issue := range v.Issues() {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{"from", "month", "other", "to"}, fields)
}

func TestBindRejectsBadBodies(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		field  string
		reason string
	}{
		{name: "empty", body: "", field: "body", reason: "request body is required"},
		{name: "malformed", body: "{", field: "body", reason: "must be valid JSON"},
		{name: "missing name", body: `{"entries":[{"employeeId":"1"}]}`, field: "name", reason: "is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			var payload samplePayload
			assert.False(t, Bind(rec, req, &payload, "req-1"))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var env struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Details struct {
						Fields []ValidationIssue `json:"fields"`
					} `json:"details"`
				} `json:"error"`
				RequestID string `json:"requestId"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Equal(t, "validation_error", env.Error.Code)
			assert.Equal(t, "req-1", env.RequestID)
			require.Len(t, env.Error.Details.Fields, 1)
			assert.Equal(t, tc.field, env.Error.Details.Fields[0].Field)
			assert.Equal(t, tc.reason, env.Error.Details.Fields[0].Reason)
		})
	}
}

func TestBindAcceptsValidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","entries":[{"employeeId":"7"}]}`))
	rec := httptest.NewRecorder()
	var payload samplePayload
	require.True(t, Bind(rec, req, &payload, ""))
	assert.Equal(t, "Ana", payload.Name)
	assert.Equal(t, "7", payload.Entries[0].EmployeeID)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=20", nil)
	assert.Equal(t, Pagination{Limit: 100, Offset: 20}, ParsePagination(req, 25, 100))

	req = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil)
	assert.Equal(t, Pagination{Limit: 25, Offset: 0}, ParsePagination(req, 25, 100))
}

func TestParseDate(t *testing.T) {
	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	day, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", day.Format("2006-01-02"))

	_, err = ParseDate("01/05/2024")
	assert.Error(t, err)
}

func TestQueryDateNormalizesTimestamps(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"/", ""},
		{"/?date=2024-05-01", "2024-05-01"},
		{"/?date=2024-05-01T00:00:00Z", "2024-05-01"},
		{"/?date=2024-05-01T23:30:00%2B05:00", "2024-05-01"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		got, ok := QueryDate(rec, httptest.NewRequest(http.MethodGet, tc.query, nil), "date", "r1")
		require.True(t, ok, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
	}

	rec := httptest.NewRecorder()
	_, ok := QueryDate(rec, httptest.NewRequest(http.MethodGet, "/?date=yesterday", nil), "date", "r1")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date"`)
}

func TestFailMappedUsesFirstMatchingRule(t *testing.T) {
	missing := errors.New("thing not found")
	rec := httptest.NewRecorder()
	FailMapped(rec, "r1", fmt.Errorf("load: %w", missing), "thing_failed",
		BadRequest(errors.New("other"), "other"),
		NotFound(missing, "thing_not_found"),
	)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"thing_not_found"`)
	assert.Contains(t, rec.Body.String(), `"thing not found"`)

	rec = httptest.NewRecorder()
	FailMapped(rec, "r2", errors.New("disk full"), "thing_failed", NotFound(missing, "thing_not_found"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"thing_failed"`)
	assert.NotContains(t, rec.Body.String(), "disk full")
}
