package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollboard/internal/config"
)

// Applies every embedded up migration, or only the one whose name is given:
//
//	migrations [flags] [migration-name]
func main() {
	cfg, err := config.Load("migrations", append([]string{"-backend", config.BackendPostgres}, os.Args[1:]...))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Error connecting to database")
	}
	defer db.Close()

	if len(cfg.Args) > 0 {
		name := cfg.Args[0]
		if err := postgres.ApplyMigration(ctx, db, name); err != nil {
			logrus.WithError(err).WithField("migration", name).Fatal("Failed to execute migration")
		}
		logrus.WithField("migration", name).Info("Migration file executed successfully.")
		return
	}

	if err := postgres.ApplyMigrations(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to execute migrations")
	}
	logrus.Info("Migrations executed successfully.")
}
