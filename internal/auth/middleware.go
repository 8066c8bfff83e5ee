package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

var userIDKey contextKey

// UserID returns the authenticated user id, or "" outside an authenticated
// request.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the user id. Exported for handler
// tests.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Middleware returns an HTTP middleware that requires a valid Bearer token
// and stores the token's user id in the request context.
func Middleware(tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				unauthorized(w, r, "missing bearer token")
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				unauthorized(w, r, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Warn("auth: rejected request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", reason,
		"remote_addr", r.RemoteAddr,
	)
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
}
