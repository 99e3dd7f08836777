package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	return db, nil
}

// MigrationNames lists the embedded "up" migrations in apply order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMigrations runs every "up" migration in order. Migrations are written
// to be idempotent.
func ApplyMigrations(ctx context.Context, db *sqlx.DB) error {
	names, err := MigrationNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := applyFile(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMigration runs the single migration file whose name contains
// migrationName, e.g. "create_polls.up" or "0002_create_suggestions.down".
func ApplyMigration(ctx context.Context, db *sqlx.DB, migrationName string) error {
	name, err := migrationFilePath(migrationName)
	if err != nil {
		return err
	}
	return applyFile(ctx, db, name)
}

func applyFile(ctx context.Context, db *sqlx.DB, name string) error {
	content, err := migrationFiles.ReadFile(path.Join("migrations", name))
	if err != nil {
		return errors.Wrapf(err, "failed to read migration %s", name)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return errors.Wrapf(err, "failed to execute migration %s", name)
	}
	return nil
}

func migrationFilePath(migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", errors.Wrap(err, "invalid migration name")
	}

	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return "", errors.Wrap(err, "failed to read migrations directory")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if regex.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}

	return "", errors.Errorf("migration file not found: %s", migrationName)
}
