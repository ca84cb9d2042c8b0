package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/store"
)

// SnapshotSource produces the state to persist. *library.Library satisfies it.
type SnapshotSource interface {
	Export() library.Snapshot
}

// SaveSnapshotTask exports the library when it runs, not when it is
// created, so a queued task always saves the latest state.
type SaveSnapshotTask struct {
	id     uuid.UUID
	source SnapshotSource
	store  store.SnapshotStore
	logger *slog.Logger

	// serial, when set, is held across Export and Save so that saves
	// sharing it commit in export order.
	serial *sync.Mutex
}

// NewSaveSnapshotTask creates a SaveSnapshotTask.
func NewSaveSnapshotTask(
	source SnapshotSource,
	snapshots store.SnapshotStore,
	logger *slog.Logger,
) *SaveSnapshotTask {
	return &SaveSnapshotTask{
		id:     uuid.New(),
		source: source,
		store:  snapshots,
		logger: logger,
	}
}

// ID returns the task's unique identifier
func (t *SaveSnapshotTask) ID() uuid.UUID { return t.id }

// Kind returns KindSaveSnapshot.
func (t *SaveSnapshotTask) Kind() Kind { return KindSaveSnapshot }

// Execute exports and saves the library.
func (t *SaveSnapshotTask) Execute(ctx context.Context) error {
	if t.serial != nil {
		t.serial.Lock()
		defer t.serial.Unlock()
	}
	snap := t.source.Export()
	if err := t.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save library snapshot: %w", err)
	}
	t.logger.Debug("library snapshot persisted",
		"task_id", t.id,
		"flashcards", snap.Stats.Flashcards,
		"wordlists", snap.Stats.Wordlists,
		"folders", snap.Stats.Folders)
	return nil
}
