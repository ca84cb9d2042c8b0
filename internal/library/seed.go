package library

import (
	"time"

	"github.com/phrazzld/wordhoard/internal/domain"
)

// Demo content ids.
const (
	DemoWordlistID = "wl-starter"
)

// DemoSnapshot builds the starter library shown to first-time users: three
// flashcards linked into a single "Starter Deck" wordlist.
func DemoSnapshot(userID string, now time.Time) Snapshot {
	if userID == "" {
		userID = DefaultUserID
	}

	cards := []domain.Flashcard{
		{
			ID:           "card-focus",
			Word:         "focus",
			DictionaryID: "wordnet",
			Meaning:      "The center of interest or activity.",
			Comment:      "Use this often in UI copy.",
			Frequency:    3,
		},
		{
			ID:           "card-eloquent",
			Word:         "eloquent",
			DictionaryID: "wordnet",
			Meaning:      "Fluent or persuasive in speaking or writing.",
			Frequency:    1,
		},
		{
			ID:           "card-resilient",
			Word:         "resilient",
			DictionaryID: "wordnet",
			Meaning:      "Able to withstand or recover quickly from difficult conditions.",
			Comment:      "Appears in tech culture pieces.",
			Frequency:    2,
		},
	}

	snap := Snapshot{
		UserID:     userID,
		Flashcards: make(map[string]domain.Flashcard, len(cards)),
		Wordlists: map[string]domain.Wordlist{
			DemoWordlistID: {
				ID:        DemoWordlistID,
				Name:      "Starter Deck",
				Comment:   "Ten-minute warmup words",
				Order:     domain.OrderCreatedAt,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: userID,
			},
		},
		Folders: map[string]domain.Folder{},
	}

	// Stagger timestamps so creation order survives the import sort.
	for i, card := range cards {
		ts := now.Add(time.Duration(i) * time.Millisecond)
		card.CreatedAt = ts
		card.UpdatedAt = ts
		card.CreatedBy = userID
		snap.Flashcards[card.ID] = card
		snap.WordlistFlashcards = append(snap.WordlistFlashcards, domain.WordlistFlashcard{
			ID:          "wfc-starter-" + card.Word,
			WordlistID:  DemoWordlistID,
			FlashcardID: card.ID,
			CreatedAt:   ts,
		})
	}
	snap.Stats = domain.Stats{Flashcards: len(cards), Wordlists: 1}
	return snap
}

// Seed replaces the current state with the demo library.
func (l *Library) Seed() error {
	return l.Import(DemoSnapshot(l.UserID(), l.nowFn()))
}
