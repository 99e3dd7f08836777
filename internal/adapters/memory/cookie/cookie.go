// Package cookie keeps voted markers in the visitor's browser.
package cookie

import (
	"net/http"

	"github.com/pkg/errors"
)

const (
	keyPrefix   = "voted_"
	markerValue = "true"

	// markers never expire on purpose; ten years is the practical maximum
	maxAge = 10 * 365 * 24 * 60 * 60
)

// Key is the cookie name holding the marker of pollID.
func Key(pollID string) string {
	return keyPrefix + pollID
}

// Memory reads markers from one request and writes them to its response.
// It lives for a single request.
type Memory struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	marked map[string]bool
}

func New(w http.ResponseWriter, r *http.Request) *Memory {
	return &Memory{
		w:      w,
		r:      r,
		secure: r.TLS != nil,
		marked: make(map[string]bool),
	}
}

func (m *Memory) HasVoted(pollID string) (bool, error) {
	if m.marked[pollID] {
		return true, nil
	}

	c, err := m.r.Cookie(Key(pollID))
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to read voted marker")
	}
	return c.Value == markerValue, nil
}

// MarkVoted sets the marker cookie. It must be called before the response
// header is written.
func (m *Memory) MarkVoted(pollID string) error {
	http.SetCookie(m.w, &http.Cookie{
		Name:     Key(pollID),
		Value:    markerValue,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.marked[pollID] = true
	return nil
}
