package middleware

import (
	"context"
	"net/http"

	"expensepro/internal/models"
)

type RoleStore interface {
	Role(ctx context.Context, username string) (string, error)
}

// RequireAdmin gates the admin route group. It reads the role fresh from
// the store, so demoting an account takes effect on the next request.
func RequireAdmin(roles RoleStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := UsernameFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			role, err := roles.Role(r.Context(), username)
			if err != nil {
				http.Error(w, "unable to verify role", http.StatusInternalServerError)
				return
			}
			if role != models.RoleAdmin {
				http.Error(w, "admin privileges required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
