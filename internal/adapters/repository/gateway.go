// Package repository selects the remote data gateway named by the
// configuration.
package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/rest"
	"github.com/vncsmyrnk/pollboard/internal/config"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type Gateway struct {
	Polls       ports.PollRepository
	Votes       ports.VoteRepository
	Suggestions ports.SuggestionRepository

	close func() error
}

func Open(ctx context.Context, cfg config.Config) (*Gateway, error) {
	switch cfg.Backend {
	case config.BackendREST:
		client := rest.NewClient(cfg.BackendURL, cfg.BackendKey, nil)
		return &Gateway{
			Polls:       rest.NewPollRepository(client),
			Votes:       rest.NewVoteRepository(client),
			Suggestions: rest.NewSuggestionRepository(client),
			close:       func() error { return nil },
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		return &Gateway{
			Polls:       postgres.NewPollRepository(db),
			Votes:       postgres.NewVoteRepository(db),
			Suggestions: postgres.NewSuggestionRepository(db),
			close:       db.Close,
		}, nil
	}

	return nil, errors.Errorf("unknown backend %q", cfg.Backend)
}

func (g *Gateway) Close() error {
	return g.close()
}
