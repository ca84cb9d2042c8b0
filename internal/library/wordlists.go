package library

import (
	"fmt"
	"strings"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
)

// NewWordlist is the caller-supplied part of a wordlist. An empty Order
// means domain.OrderCreatedAt. A new wordlist never carries a shuffle seed,
// even when created with domain.OrderShuffle; ReorderWordlist assigns one.
type NewWordlist struct {
	Name    string
	Comment string
	Order   domain.OrderStrategy
}

// AddWordlist creates a wordlist, failing once the library holds
// domain.MaxWordlistsPerUser of them.
func (l *Library) AddWordlist(in NewWordlist) (domain.Wordlist, error) {
	var wl domain.Wordlist
	err := l.mutate(func() (*events.LibraryEvent, error) {
		if len(l.wordlists) >= domain.MaxWordlistsPerUser {
			return nil, domain.NewCapacityError(
				"wordlist",
				domain.MaxWordlistsPerUser,
				fmt.Sprintf("wordlist cap reached (%d)", domain.MaxWordlistsPerUser),
			)
		}

		order := in.Order
		if order == "" {
			order = domain.OrderCreatedAt
		}
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate wordlist id: %w", err)
		}
		now := l.createdStamp()
		wl = domain.Wordlist{
			ID:        id,
			Name:      strings.TrimSpace(in.Name),
			Comment:   in.Comment,
			Order:     order,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: l.userID,
		}
		if err := wl.Validate(); err != nil {
			return nil, err
		}
		if _, exists := l.wordlists[id]; exists {
			return nil, fmt.Errorf("duplicate wordlist id %q", id)
		}
		l.wordlists[id] = wl
		l.wordlistIDs = append(l.wordlistIDs, id)
		return l.event(events.WordlistAdded, id, ""), nil
	})
	if err != nil {
		return domain.Wordlist{}, err
	}
	return cloneWordlist(wl), nil
}

// DeleteWordlist removes a wordlist, its card memberships and its folder
// memberships. The flashcards and folders themselves survive.
func (l *Library) DeleteWordlist(id string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		if _, ok := l.wordlists[id]; !ok {
			return nil, nil
		}
		delete(l.wordlists, id)
		l.wordlistIDs = removeID(l.wordlistIDs, id)
		l.wordlistCards.removeParent(id)
		l.folderWordlists.removeChild(id)
		return l.event(events.WordlistDeleted, id, ""), nil
	})
}

// AddFlashcardToWordlist links a flashcard into a wordlist. The cap is
// checked before the duplicate check, so a full wordlist rejects even a
// pair it already holds. Unknown ids and existing pairs are no-ops.
func (l *Library) AddFlashcardToWordlist(wordlistID, flashcardID string) error {
	return l.mutate(func() (*events.LibraryEvent, error) {
		if _, ok := l.wordlists[wordlistID]; !ok {
			return nil, nil
		}
		if _, ok := l.flashcards[flashcardID]; !ok {
			return nil, nil
		}
		if l.wordlistCards.count(wordlistID) >= domain.MaxFlashcardsPerWordlist {
			return nil, domain.NewCapacityError(
				"wordlist_flashcard",
				domain.MaxFlashcardsPerWordlist,
				fmt.Sprintf("this wordlist already has %d flashcards", domain.MaxFlashcardsPerWordlist),
			)
		}
		if l.wordlistCards.has(wordlistID, flashcardID) {
			return nil, nil
		}
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate membership id: %w", err)
		}
		l.wordlistCards.add(domain.WordlistFlashcard{
			ID:          id,
			WordlistID:  wordlistID,
			FlashcardID: flashcardID,
			CreatedAt:   l.nowFn(),
		})
		return l.event(events.WordlistCardAdded, wordlistID, flashcardID), nil
	})
}

// RemoveFlashcardFromWordlist unlinks a flashcard from a wordlist.
func (l *Library) RemoveFlashcardFromWordlist(wordlistID, flashcardID string) {
	_ = l.mutate(func() (*events.LibraryEvent, error) {
		if !l.wordlistCards.remove(wordlistID, flashcardID) {
			return nil, nil
		}
		return l.event(events.WordlistCardRemoved, wordlistID, flashcardID), nil
	})
}

// ReorderWordlist sets a wordlist's order strategy. Switching into
// domain.OrderShuffle draws a fresh seed; any other strategy keeps the
// existing seed so a later switch back can be compared against it.
func (l *Library) ReorderWordlist(wordlistID string, order domain.OrderStrategy) error {
	if !order.IsValid() {
		return domain.NewValidationError("order", "must be one of created_at, alpha, shuffle", domain.ErrInvalidOrder)
	}
	return l.mutate(func() (*events.LibraryEvent, error) {
		wl, ok := l.wordlists[wordlistID]
		if !ok {
			return nil, nil
		}
		wl.Order = order
		if order == domain.OrderShuffle {
			seed := l.seedFn()
			wl.ShuffleSeed = &seed
		}
		wl.UpdatedAt = l.nowFn()
		wl.UpdatedBy = l.userID
		l.wordlists[wordlistID] = wl
		return l.event(events.WordlistReordered, wordlistID, ""), nil
	})
}

func cloneWordlist(wl domain.Wordlist) domain.Wordlist {
	if wl.ShuffleSeed != nil {
		seed := *wl.ShuffleSeed
		wl.ShuffleSeed = &seed
	}
	return wl
}
