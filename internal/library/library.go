package library

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/domain/ordering"
	"github.com/phrazzld/wordhoard/internal/events"
)

// DefaultUserID owns every entity when no user is configured.
const DefaultUserID = "demo-user"

// Library holds the complete vocabulary state for a single user.
type Library struct {
	mu sync.RWMutex

	userID     string
	flashcards map[string]domain.Flashcard
	wordlists  map[string]domain.Wordlist
	folders    map[string]domain.Folder

	// creation order of the top-level collections
	flashcardIDs []string
	wordlistIDs  []string
	folderIDs    []string

	wordlistCards   *membership[domain.WordlistFlashcard]
	folderWordlists *membership[domain.FolderWordlist]

	nowFn   func() time.Time
	newID   func() (string, error)
	seedFn  func() float64
	emitter events.EventEmitter
	logger  *slog.Logger

	// newest creation stamp handed out or imported
	lastCreated time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithUserID sets the owner recorded on created and updated entities.
func WithUserID(userID string) Option {
	return func(l *Library) {
		if userID != "" {
			l.userID = userID
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		if now != nil {
			l.nowFn = now
		}
	}
}

// WithIDGenerator overrides the entity id generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(l *Library) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// WithSeedSource overrides the source of shuffle seeds. Values must lie in [0, 1).
func WithSeedSource(seed func() float64) Option {
	return func(l *Library) {
		if seed != nil {
			l.seedFn = seed
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithEmitter sets the destination for change events.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(l *Library) {
		if emitter != nil {
			l.emitter = emitter
		}
	}
}

// New creates an empty Library.
func New(opts ...Option) *Library {
	l := &Library{
		userID: DefaultUserID,
		nowFn:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:  func() (string, error) { return gonanoid.New() },
		seedFn: ordering.NewSeed,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "library")
	if l.emitter == nil {
		l.emitter = events.NewInMemoryEventEmitter(l.logger)
	}
	l.clearLocked()
	return l
}

// UserID returns the owner of this library.
func (l *Library) UserID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userID
}

// Stats returns the current collection sizes.
func (l *Library) Stats() domain.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.statsLocked()
}

// Reset discards all state. The user id is kept.
func (l *Library) Reset() {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		l.clearLocked()
		return l.event(events.LibraryReset, "", ""), nil
	})
}

func (l *Library) clearLocked() {
	l.flashcards = make(map[string]domain.Flashcard)
	l.wordlists = make(map[string]domain.Wordlist)
	l.folders = make(map[string]domain.Folder)
	l.flashcardIDs = nil
	l.wordlistIDs = nil
	l.folderIDs = nil
	l.lastCreated = time.Time{}
	l.wordlistCards = newMembership(
		func(r domain.WordlistFlashcard) string { return r.WordlistID },
		func(r domain.WordlistFlashcard) string { return r.FlashcardID },
	)
	l.folderWordlists = newMembership(
		func(r domain.FolderWordlist) string { return r.FolderID },
		func(r domain.FolderWordlist) string { return r.WordlistID },
	)
}

// createdStamp returns a creation time at microsecond precision that is
// strictly later than every other creation time in the library, so
// creation order survives stores that keep only microseconds. Callers hold
// the write lock.
func (l *Library) createdStamp() time.Time {
	t := l.nowFn().Truncate(time.Microsecond)
	if !t.After(l.lastCreated) {
		t = l.lastCreated.Add(time.Microsecond)
	}
	l.lastCreated = t
	return t
}

func (l *Library) statsLocked() domain.Stats {
	return domain.Stats{
		Flashcards: len(l.flashcards),
		Wordlists:  len(l.wordlists),
		Folders:    len(l.folders),
	}
}

// event builds a LibraryEvent stamped with the current stats. Callers hold
// the write lock.
func (l *Library) event(t events.EventType, entityID, relatedID string) *events.LibraryEvent {
	ev := events.NewLibraryEvent(t, entityID, relatedID, l.statsLocked())
	ev.CreatedAt = l.nowFn()
	return ev
}

// mutate runs fn under the write lock and emits the event it returns once
// the lock is released. fn returns a nil event for a no-op.
func (l *Library) mutate(fn func() (*events.LibraryEvent, error)) error {
	l.mu.Lock()
	ev, err := fn()
	l.mu.Unlock()

	if err != nil || ev == nil {
		return err
	}

	if emitErr := l.emitter.EmitEvent(context.Background(), ev); emitErr != nil {
		l.logger.Warn("library event handler failed",
			"error", emitErr,
			"event_type", ev.Type,
			"entity_id", ev.EntityID)
	}
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
