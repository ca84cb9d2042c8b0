package task

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/library"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTask is a Task whose behaviour is supplied by ExecuteFn.
type testTask struct {
	id        uuid.UUID
	ExecuteFn func(ctx context.Context) error
}

func newTestTask(fn func(ctx context.Context) error) *testTask {
	return &testTask{id: uuid.New(), ExecuteFn: fn}
}

func (t *testTask) ID() uuid.UUID                     { return t.id }
func (t *testTask) Kind() Kind                        { return "test" }
func (t *testTask) Execute(ctx context.Context) error { return t.ExecuteFn(ctx) }

// fakeSnapshotStore records saved snapshots.
type fakeSnapshotStore struct {
	mu     sync.Mutex
	saves  []library.Snapshot
	SaveFn func(ctx context.Context, snap library.Snapshot) error
}

func (f *fakeSnapshotStore) Load(ctx context.Context) (*library.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil, nil
	}
	snap := f.saves[len(f.saves)-1]
	return &snap, nil
}

func (f *fakeSnapshotStore) Save(ctx context.Context, snap library.Snapshot) error {
	if f.SaveFn != nil {
		if err := f.SaveFn(ctx, snap); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, snap)
	return nil
}

func (f *fakeSnapshotStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeSnapshotStore) last() library.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func newTestLibrary() *library.Library {
	return library.New(library.WithLogger(setupTestLogger()))
}
