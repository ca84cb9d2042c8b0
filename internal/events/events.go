package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/domain"
)

// EventType names the mutation that produced an event.
type EventType string

// Library event types, one per mutating operation.
const (
	FlashcardAdded           EventType = "flashcard.added"
	FlashcardCommentUpdated  EventType = "flashcard.comment_updated"
	FlashcardDeleted         EventType = "flashcard.deleted"
	FlashcardFrequencyBumped EventType = "flashcard.frequency_bumped"
	WordlistAdded            EventType = "wordlist.added"
	WordlistDeleted          EventType = "wordlist.deleted"
	WordlistReordered        EventType = "wordlist.reordered"
	WordlistCardAdded        EventType = "wordlist.card_added"
	WordlistCardRemoved      EventType = "wordlist.card_removed"
	FolderAdded              EventType = "folder.added"
	FolderDeleted            EventType = "folder.deleted"
	FolderWordlistAdded      EventType = "folder.wordlist_added"
	FolderWordlistRemoved    EventType = "folder.wordlist_removed"
	LibraryReset             EventType = "library.reset"
	LibraryImported          EventType = "library.imported"
)

// LibraryEvent describes a single committed change to the library.
type LibraryEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates which operation produced the event
	Type EventType `json:"type"`

	// EntityID is the primary entity touched. For membership changes it is
	// the parent (wordlist or folder) and RelatedID is the member.
	EntityID  string `json:"entity_id,omitempty"`
	RelatedID string `json:"related_id,omitempty"`

	// Stats is the derived snapshot right after the change
	Stats domain.Stats `json:"stats"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewLibraryEvent creates a new LibraryEvent with a fresh ID.
func NewLibraryEvent(eventType EventType, entityID, relatedID string, stats domain.Stats) *LibraryEvent {
	return &LibraryEvent{
		ID:        uuid.New(),
		Type:      eventType,
		EntityID:  entityID,
		RelatedID: relatedID,
		Stats:     stats,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *LibraryEvent) error
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *LibraryEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *LibraryEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *LibraryEvent) error
}
