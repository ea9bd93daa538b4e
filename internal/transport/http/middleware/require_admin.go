package middleware

import (
	"net/http"

	"perftrack/internal/transport/http/api"
)

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "admin authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
