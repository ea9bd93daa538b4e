package shared

import (
	"net/http"
	"strconv"
)

// Pagination is a limit/offset window over a list.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads ?limit and ?offset. Malformed or out-of-range values
// fall back to defaultLimit and 0; limit is capped at maxLimit when it is
// positive.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := Pagination{Limit: defaultLimit}
	q := r.URL.Query()
	if n, ok := queryInt(q.Get("limit")); ok && n > 0 {
		page.Limit = n
	}
	if n, ok := queryInt(q.Get("offset")); ok && n >= 0 {
		page.Offset = n
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}

func queryInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
