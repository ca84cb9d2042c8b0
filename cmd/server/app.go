package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordhoard/internal/config"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
	"github.com/phrazzld/wordhoard/internal/generation"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/platform/gemini"
	"github.com/phrazzld/wordhoard/internal/platform/postgres"
	"github.com/phrazzld/wordhoard/internal/session"
	"github.com/phrazzld/wordhoard/internal/store"
	"github.com/phrazzld/wordhoard/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	library  *library.Library
	emitter  *events.InMemoryEventEmitter
	sessions *session.Manager

	generator generation.Generator

	// Persistence; nil when no database is configured.
	snapshots store.SnapshotStore
	saver     *task.SnapshotEventHandler

	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. db may be nil, in which case the library lives only in memory.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.library = library.New(
		library.WithUserID(cfg.Library.UserID),
		library.WithLogger(logger),
		library.WithEmitter(app.emitter),
	)

	if db != nil {
		app.snapshots = postgres.NewSnapshotStore(db, logger)
	}
	if err := app.restoreLibrary(ctx); err != nil {
		return nil, err
	}

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	// Registered after the restore so loading a snapshot does not
	// immediately write it back.
	if app.snapshots != nil {
		app.saver = task.NewSnapshotEventHandler(
			app.library,
			app.snapshots,
			app.taskRunner,
			cfg.Database.SaveDebounce(),
			logger,
		)
		app.emitter.RegisterHandler(app.saver)
	}

	var err error
	app.generator, err = setupGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		app.taskRunner.Stop(ctx)
		return nil, err
	}

	app.sessions = session.NewManager(app.library, logger)

	stats := app.library.Stats()
	logger.Info("application initialized successfully",
		"flashcards", stats.Flashcards,
		"wordlists", stats.Wordlists,
		"folders", stats.Folders)
	return app, nil
}

// restoreLibrary loads the persisted snapshot, falling back to the demo
// library when nothing has been saved yet and seeding is enabled.
func (app *application) restoreLibrary(ctx context.Context) error {
	if app.snapshots == nil {
		return app.seedLibrary()
	}

	snap, err := app.snapshots.Load(ctx)
	switch {
	case errors.Is(err, store.ErrSnapshotNotFound):
		app.logger.Info("no saved library found")
		if err := app.seedLibrary(); err != nil {
			return err
		}
		if app.library.Stats() == (domain.Stats{}) {
			return nil
		}
		if err := app.snapshots.Save(ctx, app.library.Export()); err != nil {
			return fmt.Errorf("failed to save seeded library: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to load library snapshot: %w", err)
	}

	if err := app.library.Import(*snap); err != nil {
		return fmt.Errorf("failed to restore library snapshot: %w", err)
	}
	stats := app.library.Stats()
	app.logger.Info("library restored from database",
		"flashcards", stats.Flashcards,
		"wordlists", stats.Wordlists,
		"folders", stats.Folders)
	return nil
}

func (app *application) seedLibrary() error {
	if !app.config.Library.SeedDemo {
		return nil
	}
	if err := app.library.Seed(); err != nil {
		return fmt.Errorf("failed to seed demo library: %w", err)
	}
	app.logger.Info("demo library seeded")
	return nil
}

// setupGenerator picks the Gemini generator when an API key is configured
// and the offline stub otherwise.
func setupGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Info("gemini api key not set, using stub generator")
		return generation.NewStubGenerator(uint64(time.Now().UnixNano())), nil
	}

	gen, err := gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully", "model", cfg.ModelName)
	return gen, nil
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	pruneCtx, stopPruning := context.WithCancel(ctx)
	defer stopPruning()
	go app.pruneSessions(pruneCtx)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// pruneSessions ends idle sessions until ctx is canceled.
func (app *application) pruneSessions(ctx context.Context) {
	idle := app.config.Session.IdleTimeout()
	interval := idle / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.sessions.Prune(idle); n > 0 {
				app.logger.Info("idle sessions pruned", "removed", n, "open_sessions", app.sessions.Len())
			}
		}
	}
}

// cleanup flushes any pending save, drains the task runner and closes the
// database.
func (app *application) cleanup(ctx context.Context) {
	if app.saver != nil {
		if err := app.saver.Flush(ctx); err != nil {
			app.logger.Error("failed to flush library snapshot", "error", err)
		}
	}

	if app.taskRunner != nil {
		app.taskRunner.Stop(ctx)
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
