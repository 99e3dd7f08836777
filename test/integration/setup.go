package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	repo "github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

// setupDB starts a migrated Postgres for the test and tears it down after.
func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()
	container, dsn, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	db, err := repo.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repo.ApplyMigrations(ctx, db))
	return db
}

func seedPoll(t *testing.T, db *sqlx.DB, question string, options []string, active bool, createdAt time.Time) string {
	t.Helper()

	var id string
	err := db.Get(&id, `
		INSERT INTO polls (question, options, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, question, pq.StringArray(options), active, createdAt)
	require.NoError(t, err)
	return id
}

func seedVotes(t *testing.T, db *sqlx.DB, pollID string, indexes ...int) {
	t.Helper()
	for _, idx := range indexes {
		_, err := db.Exec(`INSERT INTO poll_votes (poll_id, option_index) VALUES ($1, $2)`, pollID, idx)
		require.NoError(t, err)
	}
}
