package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/wordhoard/internal/events"
	"github.com/phrazzld/wordhoard/internal/store"
)

// Submitter accepts tasks for background execution. *TaskRunner satisfies it.
type Submitter interface {
	Submit(task Task) error
}

// SnapshotEventHandler turns library events into snapshot saves. Bursts of
// events within the debounce window collapse into a single save; at most
// one save is pending at any time. Saves run one at a time whatever the
// runner's worker count, so the last save to commit holds the newest state.
type SnapshotEventHandler struct {
	source   SnapshotSource
	store    store.SnapshotStore
	runner   Submitter
	debounce time.Duration
	logger   *slog.Logger

	saveMu sync.Mutex

	mu      sync.Mutex
	pending bool
	timer   *time.Timer
	// closed once the scheduled save has been handed to the runner
	handedOff chan struct{}
}

// NewSnapshotEventHandler creates a handler that submits SaveSnapshotTasks
// to runner. A non-positive debounce schedules the save immediately.
func NewSnapshotEventHandler(
	source SnapshotSource,
	snapshots store.SnapshotStore,
	runner Submitter,
	debounce time.Duration,
	logger *slog.Logger,
) *SnapshotEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce < 0 {
		debounce = 0
	}
	return &SnapshotEventHandler{
		source:   source,
		store:    snapshots,
		runner:   runner,
		debounce: debounce,
		logger:   logger.With("component", "snapshot_event_handler"),
	}
}

// HandleEvent marks the library dirty and schedules a save if none is pending.
func (h *SnapshotEventHandler) HandleEvent(ctx context.Context, event *events.LibraryEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending {
		h.logger.Debug("snapshot save already pending", "event_type", event.Type)
		return nil
	}
	done := make(chan struct{})
	h.pending = true
	h.handedOff = done
	h.timer = time.AfterFunc(h.debounce, func() { h.submit(done) })
	return nil
}

func (h *SnapshotEventHandler) newTask() *SaveSnapshotTask {
	t := NewSaveSnapshotTask(h.source, h.store, h.logger)
	t.serial = &h.saveMu
	return t
}

func (h *SnapshotEventHandler) submit(done chan struct{}) {
	defer close(done)

	h.mu.Lock()
	h.pending = false
	h.timer = nil
	h.mu.Unlock()

	t := h.newTask()
	err := h.runner.Submit(t)
	switch {
	case err == nil:
	case errors.Is(err, ErrQueueClosed):
		// Shutting down: save inline rather than lose the change.
		if err := t.Execute(context.Background()); err != nil {
			h.logger.Error("inline snapshot save failed", "error", err)
		}
	default:
		h.logger.Error("failed to submit snapshot task", "error", err)
	}
}

// Pending reports whether a save is scheduled but not yet submitted.
func (h *SnapshotEventHandler) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

// Flush makes sure the latest change reaches the runner or the store. A
// save still waiting on its debounce timer is cancelled and run
// synchronously; one whose timer already fired is waited for until it has
// been handed to the runner. Flush is a no-op when nothing is scheduled.
func (h *SnapshotEventHandler) Flush(ctx context.Context) error {
	h.mu.Lock()
	done := h.handedOff
	if h.pending && h.timer != nil && h.timer.Stop() {
		h.pending = false
		h.timer = nil
		h.handedOff = nil
		h.mu.Unlock()
		close(done)

		h.logger.Info("flushing pending snapshot save")
		return h.newTask().Execute(ctx)
	}
	h.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ events.EventHandler = (*SnapshotEventHandler)(nil)
