package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

type SuggestionRepository interface {
	Save(ctx context.Context, suggestion *domain.Suggestion) error
}

type SuggestionInput struct {
	Name    string
	Email   string
	Message string
}

type SuggestionService interface {
	Submit(ctx context.Context, input SuggestionInput) error
}
