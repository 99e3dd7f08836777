package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) ports.SuggestionRepository {
	return &suggestionRepository{
		db: db,
	}
}

func (r *suggestionRepository) Save(ctx context.Context, s *domain.Suggestion) error {
	query := `INSERT INTO suggestions (name, email, message) VALUES (:name, :email, :message)`
	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"name":    s.Name,
		"email":   s.Email,
		"message": s.Message,
	})
	if err != nil {
		return errors.Wrap(err, "failed to save suggestion")
	}
	return nil
}
