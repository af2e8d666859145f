package security

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookieName            = "session_id"
	SessionContextKey contextKey = "session"
)

// SessionMiddleware : выдаёт посетителю cookie с идентификатором сессии.
// Сессия нужна и неавторизованным посетителям: к ней привязываются гранты
// доступа к приватным статьям.
func SessionMiddleware(ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}

			if sessionID == "" {
				sessionID = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(ttl),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(SessionContextKey).(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("сессия не найдена в context")
	}
	return sessionID, nil
}
