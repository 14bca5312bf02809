package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

const SessionCookie = "re_session"

type contextKey string

const SessionIDKey contextKey = "session_id"

// Session gives every browser a stable session id kept in a cookie. Ids that
// aren't UUIDs are replaced.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		_, ctx := logger.With(r.Context(), "session_id", id)
		ctx = context.WithValue(ctx, SessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id set by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}
