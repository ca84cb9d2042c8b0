package library

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
)

var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances by one second on every read.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// sequentialIDs returns id-1, id-2, ...
func sequentialIDs() func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
}

// seedSequence hands out the given seeds in order, repeating the last one.
func seedSequence(seeds ...float64) func() float64 {
	var mu sync.Mutex
	i := 0
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		s := seeds[i]
		if i < len(seeds)-1 {
			i++
		}
		return s
	}
}

// recorder captures every event emitted by a Library.
type recorder struct {
	mu     sync.Mutex
	events []*events.LibraryEvent
}

func (r *recorder) HandleEvent(_ context.Context, ev *events.LibraryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recorder) last() *events.LibraryEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestLibrary builds a Library with deterministic ids, clock and seeds,
// and a recorder attached to its event stream.
func newTestLibrary(t *testing.T, opts ...Option) (*Library, *recorder) {
	t.Helper()
	rec := &recorder{}
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(rec)

	clock := &fakeClock{now: testEpoch}
	base := []Option{
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithSeedSource(seedSequence(0.25, 0.75)),
		WithLogger(discardLogger()),
		WithEmitter(emitter),
	}
	return New(append(base, opts...)...), rec
}

func mustAddCard(t *testing.T, l *Library, word string) string {
	t.Helper()
	card, err := l.AddFlashcard(NewFlashcard{Word: word, Meaning: "meaning of " + word})
	if err != nil {
		t.Fatalf("AddFlashcard(%q): %v", word, err)
	}
	return card.ID
}

func mustAddWordlist(t *testing.T, l *Library, name string) string {
	t.Helper()
	wl, err := l.AddWordlist(NewWordlist{Name: name})
	if err != nil {
		t.Fatalf("AddWordlist(%q): %v", name, err)
	}
	return wl.ID
}

func mustAddFolder(t *testing.T, l *Library, name string) string {
	t.Helper()
	folder, err := l.AddFolder(NewFolder{Name: name})
	if err != nil {
		t.Fatalf("AddFolder(%q): %v", name, err)
	}
	return folder.ID
}

func words(cards []domain.Flashcard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Word)
	}
	return out
}
