// Package middleware provides authentication middleware for protected routes
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/manav1337/Task-manager/internal/auth/service"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the decoded identity of the caller. It only exists as a
// transport between the middleware and the handler; services receive the
// identity and role as explicit arguments, never through context.
type Principal struct {
	UserID   int
	Username string
	Role     int
}

// AuthMiddleware validates the JWT access token and stores the decoded
// principal in the request context. Requests with no token or an invalid
// token are rejected before any handler logic runs.
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, username, role, err := tokenGenerator.Validate(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			principal := &Principal{UserID: userID, Username: username, Role: role}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware validates the JWT access token and checks that the caller's
// role is at least requiredRole. A valid token with an insufficient role
// yields 403 without the handler ever running.
func RoleMiddleware(tokenGenerator *service.TokenGenerator, requiredRole int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, username, role, err := tokenGenerator.Validate(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if role < requiredRole {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			principal := &Principal{UserID: userID, Username: username, Role: role}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the decoded caller identity from context
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)
	return principal, ok
}

// extractToken pulls the bearer token from the Authorization header,
// falling back to the access_token cookie.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
