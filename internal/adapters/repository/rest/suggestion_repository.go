package rest

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type suggestionRepository struct {
	client *Client
}

func NewSuggestionRepository(client *Client) ports.SuggestionRepository {
	return &suggestionRepository{
		client: client,
	}
}

func (r *suggestionRepository) Save(ctx context.Context, s *domain.Suggestion) error {
	return r.client.insert(ctx, collectionSuggestions, suggestionInsert{
		Name:    s.Name,
		Email:   s.Email,
		Message: s.Message,
	})
}
