package domain

// Tally is the per-option vote count of one poll as last fetched from the
// backend, plus at most one pending increment for a vote this visitor just
// cast. The pending increment is never sent back to the backend; it only
// keeps the local view consistent until the next fetch.
type Tally struct {
	counts  map[int]int
	total   int
	pending *int
}

// NewTally counts the votes of one poll.
func NewTally(votes []Vote) Tally {
	t := Tally{counts: make(map[int]int, len(votes))}
	for _, v := range votes {
		t.counts[v.OptionIndex]++
	}
	t.total = len(votes)
	return t
}

// Count returns the votes for the option at index, pending increment included.
func (t Tally) Count(index int) int {
	n := t.counts[index]
	if t.pending != nil && *t.pending == index {
		n++
	}
	return n
}

// Total returns the number of votes, pending increment included.
func (t Tally) Total() int {
	if t.pending != nil {
		return t.total + 1
	}
	return t.total
}

// Fetched returns the total as last read from the backend.
func (t Tally) Fetched() int {
	return t.total
}

// Pending returns the option carrying the pending increment, if any.
func (t Tally) Pending() (int, bool) {
	if t.pending == nil {
		return 0, false
	}
	return *t.pending, true
}

// WithVote returns a copy of the tally with a pending increment on index.
// A tally holds at most one pending increment.
func (t Tally) WithVote(index int) (Tally, error) {
	if t.pending != nil {
		return t, ErrPendingVote
	}
	next := Tally{counts: t.counts, total: t.total}
	next.pending = &index
	return next, nil
}
