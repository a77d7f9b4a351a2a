package httputil

import (
	"log/slog"
	"net/http"

	"bible-hub/internal/session"
)

// RequireSession rejects requests without a live session cookie.
func RequireSession(gate *session.Gate, log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(session.CookieName); err == nil {
				token = c.Value
			}
			ok, err := gate.Check(r.Context(), token)
			if err != nil {
				Fail(log, w, "session check failed", err, http.StatusInternalServerError)
				return
			}
			if !ok {
				Fail(log, w, "login required", nil, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
