package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error) {
	query := `SELECT option_index FROM poll_votes WHERE poll_id::text = $1`

	var indexes []int
	if err := r.db.SelectContext(ctx, &indexes, query, pollID); err != nil {
		return nil, errors.Wrapf(err, "failed to list votes for poll %s", pollID)
	}

	votes := make([]domain.Vote, 0, len(indexes))
	for _, idx := range indexes {
		votes = append(votes, domain.Vote{PollID: pollID, OptionIndex: idx})
	}
	return votes, nil
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO poll_votes (poll_id, option_index, voter_ip)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, vote.PollID, vote.OptionIndex, vote.VoterIP)
	if err != nil {
		return errors.Wrap(err, "failed to save vote")
	}
	return nil
}
