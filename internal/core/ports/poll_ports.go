package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// PollRepository reads the backend's polls collection.
type PollRepository interface {
	// ListActive returns active polls, newest first.
	ListActive(ctx context.Context) ([]*domain.Poll, error)
	// GetActive returns one active poll or domain.ErrPollNotFound.
	GetActive(ctx context.Context, id string) (*domain.Poll, error)
}

type PollService interface {
	// Board builds one card per active poll for the visitor owning memory.
	// A known card is used as is for its poll instead of reading its votes.
	Board(ctx context.Context, memory VoteMemory, known ...domain.PollCard) (*domain.Board, error)
	// Card builds the card of a single active poll.
	Card(ctx context.Context, pollID string, memory VoteMemory) (*domain.PollCard, error)
}
