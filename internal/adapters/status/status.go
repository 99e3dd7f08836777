// Package status keeps the self-clearing status line of each visitor.
package status

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ClearAfter is how long a status stays visible.
const ClearAfter = 5 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Status struct {
	Kind    Kind
	Message string
}

// Board owns one status line per visitor. Showing a status replaces the
// previous one together with its expiry, so an older expiry can never clear
// a newer message.
type Board struct {
	entries *cache.Cache
}

func NewBoard(clearAfter time.Duration) *Board {
	return &Board{
		entries: cache.New(clearAfter, 2*clearAfter),
	}
}

func (b *Board) Show(visitor string, kind Kind, message string) {
	b.entries.Set(visitor, Status{Kind: kind, Message: message}, cache.DefaultExpiration)
}

// Current returns the visitor's status while it has not cleared yet.
func (b *Board) Current(visitor string) (Status, bool) {
	v, ok := b.entries.Get(visitor)
	if !ok {
		return Status{}, false
	}
	return v.(Status), true
}
