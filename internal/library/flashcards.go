package library

import (
	"fmt"
	"strings"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
)

// NewFlashcard is the caller-supplied part of a flashcard. The Library
// assigns the id, timestamps and owner.
type NewFlashcard struct {
	Word         string
	DictionaryID string
	Meaning      string
	AudioURL     string
	Comment      string
	Frequency    int
}

// AddFlashcard creates a flashcard. Word and meaning are trimmed and must
// not be empty.
func (l *Library) AddFlashcard(in NewFlashcard) (domain.Flashcard, error) {
	var card domain.Flashcard
	err := l.mutate(func() (*events.LibraryEvent, error) {
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate flashcard id: %w", err)
		}
		now := l.createdStamp()
		card = domain.Flashcard{
			ID:           id,
			Word:         strings.TrimSpace(in.Word),
			DictionaryID: in.DictionaryID,
			Meaning:      strings.TrimSpace(in.Meaning),
			AudioURL:     in.AudioURL,
			Comment:      in.Comment,
			Frequency:    in.Frequency,
			CreatedAt:    now,
			UpdatedAt:    now,
			CreatedBy:    l.userID,
		}
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if _, exists := l.flashcards[id]; exists {
			return nil, fmt.Errorf("duplicate flashcard id %q", id)
		}
		l.flashcards[id] = card
		l.flashcardIDs = append(l.flashcardIDs, id)
		return l.event(events.FlashcardAdded, id, ""), nil
	})
	if err != nil {
		return domain.Flashcard{}, err
	}
	return card, nil
}

// UpdateFlashcardComment replaces a flashcard's comment. A comment longer
// than domain.MaxCommentLength is rejected even when the id is unknown.
func (l *Library) UpdateFlashcardComment(id, comment string) error {
	if err := domain.ValidateComment(comment); err != nil {
		return err
	}
	return l.mutate(func() (*events.LibraryEvent, error) {
		card, ok := l.flashcards[id]
		if !ok {
			return nil, nil
		}
		card.Comment = comment
		card.UpdatedAt = l.nowFn()
		l.flashcards[id] = card
		return l.event(events.FlashcardCommentUpdated, id, ""), nil
	})
}

// DeleteFlashcard removes a flashcard and every wordlist membership that
// points at it.
func (l *Library) DeleteFlashcard(id string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		if _, ok := l.flashcards[id]; !ok {
			return nil, nil
		}
		delete(l.flashcards, id)
		l.flashcardIDs = removeID(l.flashcardIDs, id)
		l.wordlistCards.removeChild(id)
		return l.event(events.FlashcardDeleted, id, ""), nil
	})
}

// BumpFrequency records one more confirmed review of a flashcard.
func (l *Library) BumpFrequency(id string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		card, ok := l.flashcards[id]
		if !ok {
			return nil, nil
		}
		card.Frequency++
		card.UpdatedAt = l.nowFn()
		l.flashcards[id] = card
		return l.event(events.FlashcardFrequencyBumped, id, ""), nil
	})
}
