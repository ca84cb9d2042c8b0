// Package main runs the wordhoard API server: an in-memory vocabulary
// library of flashcards, wordlists and folders, with learn/test sessions,
// generated study content and optional Postgres snapshot persistence.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/wordhoard/internal/config"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
	"github.com/phrazzld/wordhoard/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, reset, status, version) and exit",
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		slog.Error("wordhoard exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, then either runs a migration command or serves
// the API until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"persistence", cfg.Database.Enabled(),
		"llm", cfg.LLM.GeminiAPIKey != "")

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, log, migrateCmd)
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppDatabase opens the snapshot database and brings its schema up to
// date. It returns a nil *sql.DB when persistence is not configured.
func setupAppDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	if !cfg.Database.Enabled() {
		log.Info("database url not set, library will not be persisted")
		return nil, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, log, postgres.MigrateUp); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("database connection established")
	return db, nil
}
