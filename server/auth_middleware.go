package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/livrolivre/go-library-server/token"
	"github.com/livrolivre/go-library-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified token claims
	ContextKeyClaims ContextKey = "claims"
)

// ClaimsFromContext returns the claims placed by RequireAuth.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(token.Claims)
	return claims, ok
}

// RequireAuth validates a Bearer access token and injects its claims into
// the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, "unauthorized", "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeJSONError(w, "unauthorized", "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			accessToken := parts[1]
			if accessToken == "" {
				writeJSONError(w, "unauthorized", "Empty token", http.StatusUnauthorized)
				return
			}

			claims, err := s.services.Tokens.Verify(accessToken)
			if err != nil {
				writeJSONError(w, "unauthorized", "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole allows the request through only when the verified claims carry
// one of the given roles. Must be chained after RequireAuth.
func (s *Server) RequireRole(roles ...users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, "forbidden", "No verified identity", http.StatusForbidden)
				return
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					next(w, r)
					return
				}
			}
			writeJSONError(w, "forbidden", "Insufficient role", http.StatusForbidden)
		}
	}
}

// RequireAdminOrSelf allows admins through unconditionally and other users
// only when the {id} path segment matches their own subject.
func (s *Server) RequireAdminOrSelf() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, "forbidden", "No verified identity", http.StatusForbidden)
				return
			}
			if claims.Role == string(users.RoleAdmin) || claims.Subject == r.PathValue("id") {
				next(w, r)
				return
			}
			writeJSONError(w, "forbidden", "Insufficient role", http.StatusForbidden)
		}
	}
}
