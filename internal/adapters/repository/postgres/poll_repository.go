package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type pollRepository struct {
	db *sqlx.DB
}

func NewPollRepository(db *sqlx.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

type pollRow struct {
	ID        string         `db:"id"`
	Question  string         `db:"question"`
	Options   pq.StringArray `db:"options"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r pollRow) toDomain() *domain.Poll {
	return &domain.Poll{
		ID:        r.ID,
		Question:  r.Question,
		Options:   []string(r.Options),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

func (r *pollRepository) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, question, options, is_active, created_at
		FROM polls
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	var rows []pollRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list active polls")
	}

	polls := make([]*domain.Poll, 0, len(rows))
	for _, row := range rows {
		polls = append(polls, row.toDomain())
	}
	return polls, nil
}

func (r *pollRepository) GetActive(ctx context.Context, id string) (*domain.Poll, error) {
	query := `
		SELECT id, question, options, is_active, created_at
		FROM polls
		WHERE id::text = $1 AND is_active = TRUE
	`

	var row pollRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, errors.Wrap(err, "failed to get poll")
	}
	return row.toDomain(), nil
}
