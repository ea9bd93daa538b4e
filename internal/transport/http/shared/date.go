package shared

import (
	"net/http"
	"strings"
	"time"

	"perftrack/internal/domain/document"
)

// ParseDate accepts an RFC 3339 timestamp or a calendar day in
// document.DateLayout. An empty value yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(document.DateLayout, value)
}

// QueryDate reads an optional date query parameter and returns it in the
// layout stored on document entities. Timestamps keep their own calendar
// day. A malformed value is rejected with a validation error and ok=false.
func QueryDate(w http.ResponseWriter, r *http.Request, field, requestID string) (string, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(field))
	if raw == "" {
		return "", true
	}
	v := NewValidator()
	parsed, valid := v.Date(field, raw)
	if !valid {
		v.Reject(w, requestID)
		return "", false
	}
	return parsed.Format(document.DateLayout), true
}
