package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/wordhoard/internal/events"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRunner(t *testing.T) *TaskRunner {
	t.Helper()
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), setupTestLogger())
	runner.Start()
	t.Cleanup(func() { runner.Stop(context.Background()) })
	return runner
}

func TestSaveSnapshotTask_Execute(t *testing.T) {
	lib := newTestLibrary()
	_, err := lib.AddFlashcard(library.NewFlashcard{Word: "focus", Meaning: "center"})
	require.NoError(t, err)

	snapshots := &fakeSnapshotStore{}
	task := NewSaveSnapshotTask(lib, snapshots, setupTestLogger())

	assert.Equal(t, KindSaveSnapshot, task.Kind())
	require.NoError(t, task.Execute(context.Background()))
	require.Equal(t, 1, snapshots.count())
	assert.Equal(t, 1, snapshots.last().Stats.Flashcards)
}

func TestSaveSnapshotTask_ExecuteError(t *testing.T) {
	snapshots := &fakeSnapshotStore{
		SaveFn: func(context.Context, library.Snapshot) error { return assert.AnError },
	}
	task := NewSaveSnapshotTask(newTestLibrary(), snapshots, setupTestLogger())

	err := task.Execute(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSnapshotEventHandler_CoalescesBursts(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(setupTestLogger())
	lib := library.New(library.WithLogger(setupTestLogger()), library.WithEmitter(emitter))
	snapshots := &fakeSnapshotStore{}
	handler := NewSnapshotEventHandler(lib, snapshots, startRunner(t), 50*time.Millisecond, setupTestLogger())
	emitter.RegisterHandler(handler)

	for _, w := range []string{"focus", "eloquent", "resilient"} {
		_, err := lib.AddFlashcard(library.NewFlashcard{Word: w, Meaning: "m"})
		require.NoError(t, err)
	}
	assert.True(t, handler.Pending())

	require.Eventually(t, func() bool { return snapshots.count() == 1 },
		2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, snapshots.last().Stats.Flashcards, "save sees the latest state")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, snapshots.count())
	assert.False(t, handler.Pending())
}

func TestSnapshotEventHandler_SchedulesAgainAfterSave(t *testing.T) {
	lib := newTestLibrary()
	snapshots := &fakeSnapshotStore{}
	handler := NewSnapshotEventHandler(lib, snapshots, startRunner(t), 0, setupTestLogger())
	ev := events.NewLibraryEvent(events.FlashcardAdded, "c1", "", lib.Stats())

	require.NoError(t, handler.HandleEvent(context.Background(), ev))
	require.Eventually(t, func() bool { return snapshots.count() == 1 },
		2*time.Second, 5*time.Millisecond)

	require.NoError(t, handler.HandleEvent(context.Background(), ev))
	require.Eventually(t, func() bool { return snapshots.count() == 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestSnapshotEventHandler_Flush(t *testing.T) {
	lib := newTestLibrary()
	snapshots := &fakeSnapshotStore{}
	handler := NewSnapshotEventHandler(lib, snapshots, startRunner(t), time.Hour, setupTestLogger())

	// Nothing pending.
	require.NoError(t, handler.Flush(context.Background()))
	assert.Equal(t, 0, snapshots.count())

	ev := events.NewLibraryEvent(events.LibraryReset, "", "", lib.Stats())
	require.NoError(t, handler.HandleEvent(context.Background(), ev))
	require.True(t, handler.Pending())

	require.NoError(t, handler.Flush(context.Background()))
	assert.Equal(t, 1, snapshots.count())
	assert.False(t, handler.Pending())
}

func TestSnapshotEventHandler_SavesDoNotOverlap(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(setupTestLogger())
	lib := library.New(library.WithLogger(setupTestLogger()), library.WithEmitter(emitter))

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 2, QueueSize: 8}, setupTestLogger())
	runner.Start()
	t.Cleanup(func() { runner.Stop(context.Background()) })

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls, inFlight, maxInFlight atomic.Int32
	snapshots := &fakeSnapshotStore{
		SaveFn: func(context.Context, library.Snapshot) error {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				m := maxInFlight.Load()
				if n <= m || maxInFlight.CompareAndSwap(m, n) {
					break
				}
			}
			if calls.Add(1) == 1 {
				close(firstStarted)
				<-releaseFirst
			}
			return nil
		},
	}
	emitter.RegisterHandler(NewSnapshotEventHandler(lib, snapshots, runner, 0, setupTestLogger()))

	_, err := lib.AddFlashcard(library.NewFlashcard{Word: "focus", Meaning: "center"})
	require.NoError(t, err)
	select {
	case <-firstStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("first save never started")
	}

	// The second save is scheduled while the first is still writing.
	_, err = lib.AddFlashcard(library.NewFlashcard{Word: "eloquent", Meaning: "fluent"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	close(releaseFirst)

	require.Eventually(t, func() bool { return snapshots.count() == 2 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, snapshots.last().Stats.Flashcards, "newest state is saved last")
	assert.Equal(t, int32(1), maxInFlight.Load())
}

// gateSubmitter blocks in Submit until released.
type gateSubmitter struct {
	entered   chan struct{}
	release   chan struct{}
	submitted atomic.Int32
}

func (g *gateSubmitter) Submit(Task) error {
	close(g.entered)
	<-g.release
	g.submitted.Add(1)
	return nil
}

func TestSnapshotEventHandler_FlushWaitsForHandOff(t *testing.T) {
	lib := newTestLibrary()
	gate := &gateSubmitter{entered: make(chan struct{}), release: make(chan struct{})}
	handler := NewSnapshotEventHandler(lib, &fakeSnapshotStore{}, gate, 0, setupTestLogger())

	ev := events.NewLibraryEvent(events.FlashcardAdded, "c1", "", lib.Stats())
	require.NoError(t, handler.HandleEvent(context.Background(), ev))
	select {
	case <-gate.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("debounce timer never fired")
	}

	flushed := make(chan error, 1)
	go func() { flushed <- handler.Flush(context.Background()) }()

	select {
	case <-flushed:
		t.Fatal("Flush returned before the save reached the runner")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate.release)
	select {
	case err := <-flushed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Flush did not return")
	}
	assert.Equal(t, int32(1), gate.submitted.Load())
}

func TestSnapshotEventHandler_FlushHonoursContext(t *testing.T) {
	lib := newTestLibrary()
	gate := &gateSubmitter{entered: make(chan struct{}), release: make(chan struct{})}
	t.Cleanup(func() { close(gate.release) })
	handler := NewSnapshotEventHandler(lib, &fakeSnapshotStore{}, gate, 0, setupTestLogger())

	require.NoError(t, handler.HandleEvent(context.Background(),
		events.NewLibraryEvent(events.FlashcardAdded, "c1", "", lib.Stats())))
	<-gate.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, handler.Flush(ctx), context.DeadlineExceeded)
}

func TestSnapshotEventHandler_SavesInlineAfterRunnerStops(t *testing.T) {
	lib := newTestLibrary()
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), setupTestLogger())
	runner.Start()
	runner.Stop(context.Background())

	snapshots := &fakeSnapshotStore{}
	handler := NewSnapshotEventHandler(lib, snapshots, runner, 0, setupTestLogger())
	require.NoError(t, handler.HandleEvent(context.Background(),
		events.NewLibraryEvent(events.FlashcardAdded, "c1", "", lib.Stats())))

	require.Eventually(t, func() bool { return snapshots.count() == 1 },
		2*time.Second, 5*time.Millisecond)
}
