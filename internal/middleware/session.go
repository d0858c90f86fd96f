// File: internal/middleware/session.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pillai-nz/go-pillai/internal/auth"
	"github.com/pillai-nz/go-pillai/internal/session"
)

const SessionCookieName = "pillai_session"

type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware gives every visitor an anonymous session. The session ID
// travels in a signed cookie; a missing, expired or forged cookie starts a new
// session.
func SessionMiddleware(config SessionConfig, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				id, err := auth.ValidateSessionToken(cookie.Value, config.Secret)
				if err != nil {
					logger.Debug("Discarding invalid session cookie", "error", err)
				} else {
					sessionID = id
				}
			}

			if sessionID == "" {
				sessionID = session.NewID()
			}

			// refresh on every request so the cookie expires only after inactivity
			token, err := auth.GenerateSessionToken(sessionID, config.Secret, config.TTL)
			if err != nil {
				logger.Error("Failed to sign session cookie", "error", err)
			} else {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(config.TTL.Seconds()),
					HttpOnly: true,
					Secure:   config.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
