package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const visitorCookie = "visitor_id"

type contextKey string

const VisitorIDKey contextKey = "visitor_id"

// Visitor makes sure every request carries a visitor id, issuing a new
// cookie when the browser has none or a malformed one.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(visitorCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}

		if id == "" {
			id = uuid.NewString()
			setVisitorCookie(w, r, id)
		}

		ctx := context.WithValue(r.Context(), VisitorIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func visitorFrom(ctx context.Context) string {
	id, _ := ctx.Value(VisitorIDKey).(string)
	return id
}

func setVisitorCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 60 * 60, // 1 year
	})
}
