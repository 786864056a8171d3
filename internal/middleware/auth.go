package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"edu-backoffice/internal/model"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

type sessionVerifier interface {
	Verify(ctx context.Context, token string) (model.SessionClaims, error)
}

type contextKey string

const sessionClaimsContextKey contextKey = "session_claims"

type AuthMiddleware struct {
	verifier sessionVerifier
}

func NewAuthMiddleware(verifier sessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireSession rejects requests without a valid session cookie and stores
// the verified claims in the request context.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}

		claims, err := m.verifier.Verify(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenRevoked) {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
				return
			}
			slog.Error("session verification failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole must run after RequireSession.
func (m *AuthMiddleware) RequireRole(allowed ...model.Role) func(http.Handler) http.Handler {
	roleSet := make(map[model.Role]struct{}, len(allowed))
	for _, role := range allowed {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
				return
			}

			if _, permitted := roleSet[claims.Role]; !permitted {
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionClaimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsContextKey).(model.SessionClaims)
	return claims, ok
}
