package middleware

import (
	"context"
	"net/http"
	"strings"

	"perftrack/internal/domain/auth"
)

// Auth attaches the admin claims of a valid bearer token to the request
// context. Requests without a usable token pass through anonymously.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil || claims.Role != auth.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyAdmin, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func GetAdmin(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyAdmin).(*auth.Claims)
	return claims, ok && claims != nil
}

func IsAdmin(ctx context.Context) bool {
	_, ok := GetAdmin(ctx)
	return ok
}
