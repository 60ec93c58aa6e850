// Package session binds a browser to its cart via a long-lived cookie.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie.
const CookieName = "muacode_session"

type ctxKey struct{}

// FromContext extracts the session id from the context. It returns an empty
// string if no session is present.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware ensures every request carries a session id. A valid incoming
// cookie is reused; otherwise a new UUID is issued and set on the response.
// The id is stored in the request context (retrieve with FromContext).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
