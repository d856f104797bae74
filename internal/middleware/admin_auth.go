package middleware

import (
	"context"
	"net/http"
	"strings"

	"likebot-api/internal/services"
)

type contextKey string

const AdminUserContextKey contextKey = "admin_user"

// AdminMiddleware guards the administrative HTTP surface. The bearer
// token only proves who is calling; admin standing is re-checked against
// the live policy record on every request, so revoking an admin takes
// effect immediately.
func AdminMiddleware(tokens services.TokenService, policy services.PolicyService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractTokenFromHeader(r)
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !policy.IsAdmin(userID) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), AdminUserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the authenticated admin's user id.
func AdminFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(AdminUserContextKey).(string)
	return userID, ok
}

func extractTokenFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
