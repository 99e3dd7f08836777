package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// VoteRepository reads and inserts records of the poll_votes collection.
type VoteRepository interface {
	ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error)
	Save(ctx context.Context, vote *domain.Vote) error
}

// VoteMemory remembers, on the visitor's device, which polls were voted on.
type VoteMemory interface {
	HasVoted(pollID string) (bool, error)
	MarkVoted(pollID string) error
}

type VoteInput struct {
	// VisitorID groups overlapping submissions of the same visitor.
	VisitorID string
	PollID    string
	// OptionIndex is nil when no option was selected.
	OptionIndex *int
	Memory      VoteMemory
}

type VoteService interface {
	// Vote inserts the ballot and returns the card in results mode.
	Vote(ctx context.Context, input VoteInput) (*domain.PollCard, error)
}
