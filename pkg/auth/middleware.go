package auth

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/abgdnv/gocatalog/pkg/web"
)

type contextKey string

const (
	subjectContextKey = contextKey("subject")
	rolesContextKey   = contextKey("roles")
)

// RequireRole returns a middleware that only lets through requests bearing a valid token
// that grants role. Missing or invalid tokens get 401, valid tokens without the role get 403.
// The token subject and roles are added to the request context.
func RequireRole(verifier Verifier, role string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.RespondError(w, logger, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				web.RespondError(w, logger, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			token, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "Token verification failed", "error", err)
				web.RespondError(w, logger, http.StatusUnauthorized, "Invalid token")
				return
			}

			subject, _ := token.Subject()
			roles := Roles(token)
			if !slices.Contains(roles, role) {
				logger.WarnContext(r.Context(), "Access denied", "subject", subject, "required_role", role)
				web.RespondError(w, logger, http.StatusForbidden, "Access denied")
				return
			}

			ctx := context.WithValue(r.Context(), subjectContextKey, subject)
			ctx = context.WithValue(ctx, rolesContextKey, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextSubject retrieves the authenticated subject from the context.
func ContextSubject(ctx context.Context) string {
	subject, _ := ctx.Value(subjectContextKey).(string)
	return subject
}

// ContextRoles retrieves the authenticated roles from the context.
func ContextRoles(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesContextKey).([]string)
	return roles
}
