package rest

import (
	"context"
	"net/url"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type voteRepository struct {
	client *Client
}

func NewVoteRepository(client *Client) ports.VoteRepository {
	return &voteRepository{
		client: client,
	}
}

func (r *voteRepository) ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error) {
	query := url.Values{}
	query.Set("select", "option_index")
	query.Set("poll_id", "eq."+pollID)

	var records []voteRecord
	if err := r.client.read(ctx, collectionVotes, query, &records); err != nil {
		return nil, err
	}

	votes := make([]domain.Vote, 0, len(records))
	for _, rec := range records {
		if rec.OptionIndex == nil {
			return nil, missing(collectionVotes, "option_index")
		}
		votes = append(votes, domain.Vote{PollID: pollID, OptionIndex: *rec.OptionIndex})
	}
	return votes, nil
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	return r.client.insert(ctx, collectionVotes, voteInsert{
		PollID:      vote.PollID,
		OptionIndex: vote.OptionIndex,
		VoterIP:     vote.VoterIP,
	})
}
