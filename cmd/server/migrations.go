package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/wordhoard/internal/config"
	"github.com/phrazzld/wordhoard/internal/platform/postgres"
)

// errNoDatabase is returned when a migration is requested without a
// database url.
var errNoDatabase = errors.New("database.url must be set to run migrations")

// runMigrations executes a single goose command against the configured
// database and closes the connection.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if !cfg.Database.Enabled() {
		return errNoDatabase
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	return postgres.Migrate(ctx, db, logger, command)
}
