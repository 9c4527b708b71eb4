package middleware

import (
	"net/http"

	"oraya/internal/session"

	"go.uber.org/zap"
)

// RequireAdmin middleware guards admin endpoints behind the session admin
// flag. There is no user identity; the flag is the whole capability.
func RequireAdmin(sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Get(r)
			if !sess.IsAdmin() {
				logger.Warn("Unauthorized admin access attempt",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				RespondWithError(w, http.StatusUnauthorized, "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
