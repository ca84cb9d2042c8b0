package task

import (
	"context"

	"github.com/google/uuid"
)

// Kind names a category of background work.
type Kind string

// KindSaveSnapshot persists the current library state.
const KindSaveSnapshot Kind = "save_snapshot"

// Task is a unit of background work run by a WorkerPool.
type Task interface {
	ID() uuid.UUID
	Kind() Kind
	Execute(ctx context.Context) error
}

// Source hands buffered tasks to workers. The channel is closed once the
// source is closed and drained.
type Source interface {
	Tasks() <-chan Task
}
