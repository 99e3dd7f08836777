package rest

import (
	"context"
	"net/url"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type pollRepository struct {
	client *Client
}

func NewPollRepository(client *Client) ports.PollRepository {
	return &pollRepository{
		client: client,
	}
}

func (r *pollRepository) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("order", "created_at.desc")

	return r.fetch(ctx, query)
}

func (r *pollRepository) GetActive(ctx context.Context, id string) (*domain.Poll, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)
	query.Set("is_active", "eq.true")
	query.Set("limit", "1")

	polls, err := r.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(polls) == 0 {
		return nil, domain.ErrPollNotFound
	}
	return polls[0], nil
}

func (r *pollRepository) fetch(ctx context.Context, query url.Values) ([]*domain.Poll, error) {
	var records []pollRecord
	if err := r.client.read(ctx, collectionPolls, query, &records); err != nil {
		return nil, err
	}

	polls := make([]*domain.Poll, 0, len(records))
	for i := range records {
		poll, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}
