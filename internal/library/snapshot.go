package library

import (
	"fmt"
	"sort"
	"time"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
)

// Snapshot is the complete serializable state of a Library. Stats is
// informational; Import recomputes it.
type Snapshot struct {
	UserID             string                      `json:"user_id"`
	Flashcards         map[string]domain.Flashcard `json:"flashcards"`
	Wordlists          map[string]domain.Wordlist  `json:"wordlists"`
	WordlistFlashcards []domain.WordlistFlashcard  `json:"wordlist_flashcards"`
	Folders            map[string]domain.Folder    `json:"folders"`
	FolderWordlists    []domain.FolderWordlist     `json:"folder_wordlists"`
	Stats              domain.Stats                `json:"stats"`
}

// Export returns a deep copy of the current state.
func (l *Library) Export() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := Snapshot{
		UserID:             l.userID,
		Flashcards:         make(map[string]domain.Flashcard, len(l.flashcards)),
		Wordlists:          make(map[string]domain.Wordlist, len(l.wordlists)),
		WordlistFlashcards: l.wordlistCards.list(),
		Folders:            make(map[string]domain.Folder, len(l.folders)),
		FolderWordlists:    l.folderWordlists.list(),
		Stats:              l.statsLocked(),
	}
	for id, card := range l.flashcards {
		snap.Flashcards[id] = card
	}
	for id, wl := range l.wordlists {
		snap.Wordlists[id] = cloneWordlist(wl)
	}
	for id, folder := range l.folders {
		snap.Folders[id] = folder
	}
	return snap
}

// Import replaces the whole state with snap. The snapshot is checked
// against the same invariants the mutating operations enforce: valid
// entities, collection caps, membership caps and unique pairs. Membership
// rows pointing at missing entities are dropped; a repeated pair keeps its
// first row. On error the Library is left unchanged.
func (l *Library) Import(snap Snapshot) error {
	next := &Library{}
	next.clearLocked()

	if len(snap.Wordlists) > domain.MaxWordlistsPerUser {
		return domain.NewCapacityError(
			"wordlist",
			domain.MaxWordlistsPerUser,
			fmt.Sprintf("wordlist cap reached (%d)", domain.MaxWordlistsPerUser),
		)
	}
	if len(snap.Folders) > domain.MaxFoldersPerUser {
		return domain.NewCapacityError(
			"folder",
			domain.MaxFoldersPerUser,
			fmt.Sprintf("folder cap reached (%d)", domain.MaxFoldersPerUser),
		)
	}

	for id, card := range snap.Flashcards {
		if id != card.ID {
			return domain.NewValidationError("flashcards", fmt.Sprintf("key %q does not match id %q", id, card.ID), nil)
		}
		if err := card.Validate(); err != nil {
			return fmt.Errorf("flashcard %s: %w", id, err)
		}
		next.flashcards[id] = card
	}
	for id, wl := range snap.Wordlists {
		if id != wl.ID {
			return domain.NewValidationError("wordlists", fmt.Sprintf("key %q does not match id %q", id, wl.ID), nil)
		}
		if err := wl.Validate(); err != nil {
			return fmt.Errorf("wordlist %s: %w", id, err)
		}
		next.wordlists[id] = cloneWordlist(wl)
	}
	for id, folder := range snap.Folders {
		if id != folder.ID {
			return domain.NewValidationError("folders", fmt.Sprintf("key %q does not match id %q", id, folder.ID), nil)
		}
		if err := folder.Validate(); err != nil {
			return fmt.Errorf("folder %s: %w", id, err)
		}
		next.folders[id] = folder
	}

	next.flashcardIDs = creationOrder(snap.Flashcards, func(c domain.Flashcard) time.Time { return c.CreatedAt })
	next.wordlistIDs = creationOrder(snap.Wordlists, func(w domain.Wordlist) time.Time { return w.CreatedAt })
	next.folderIDs = creationOrder(snap.Folders, func(f domain.Folder) time.Time { return f.CreatedAt })

	dropped := 0
	for _, row := range snap.WordlistFlashcards {
		if row.ID == "" {
			return domain.NewValidationError("wordlist_flashcards", "row id cannot be empty", nil)
		}
		_, okWL := next.wordlists[row.WordlistID]
		_, okCard := next.flashcards[row.FlashcardID]
		if !okWL || !okCard || next.wordlistCards.has(row.WordlistID, row.FlashcardID) {
			dropped++
			continue
		}
		if next.wordlistCards.count(row.WordlistID) >= domain.MaxFlashcardsPerWordlist {
			return domain.NewCapacityError(
				"wordlist_flashcard",
				domain.MaxFlashcardsPerWordlist,
				fmt.Sprintf("this wordlist already has %d flashcards", domain.MaxFlashcardsPerWordlist),
			)
		}
		next.wordlistCards.add(row)
	}
	for _, row := range snap.FolderWordlists {
		if row.ID == "" {
			return domain.NewValidationError("folder_wordlists", "row id cannot be empty", nil)
		}
		_, okFolder := next.folders[row.FolderID]
		_, okWL := next.wordlists[row.WordlistID]
		if !okFolder || !okWL || next.folderWordlists.has(row.FolderID, row.WordlistID) {
			dropped++
			continue
		}
		if next.folderWordlists.count(row.FolderID) >= domain.MaxWordlistsPerFolder {
			return domain.NewCapacityError(
				"folder_wordlist",
				domain.MaxWordlistsPerFolder,
				fmt.Sprintf("this folder already has %d wordlists", domain.MaxWordlistsPerFolder),
			)
		}
		next.folderWordlists.add(row)
	}

	if dropped > 0 {
		l.logger.Warn("dropped dangling or duplicate membership rows on import", "dropped", dropped)
	}

	return l.mutate(func() (*events.LibraryEvent, error) {
		if snap.UserID != "" {
			l.userID = snap.UserID
		}
		l.flashcards = next.flashcards
		l.wordlists = next.wordlists
		l.folders = next.folders
		l.flashcardIDs = next.flashcardIDs
		l.wordlistIDs = next.wordlistIDs
		l.folderIDs = next.folderIDs
		l.wordlistCards = next.wordlistCards
		l.folderWordlists = next.folderWordlists
		l.lastCreated = latestCreated(snap)
		return l.event(events.LibraryImported, "", ""), nil
	})
}

func latestCreated(snap Snapshot) time.Time {
	var latest time.Time
	bump := func(t time.Time) {
		if t.After(latest) {
			latest = t
		}
	}
	for _, c := range snap.Flashcards {
		bump(c.CreatedAt)
	}
	for _, w := range snap.Wordlists {
		bump(w.CreatedAt)
	}
	for _, f := range snap.Folders {
		bump(f.CreatedAt)
	}
	return latest
}

// creationOrder returns the keys of m ordered by creation time, then id.
func creationOrder[T any](m map[string]T, createdAt func(T) time.Time) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := createdAt(m[ids[i]]), createdAt(m[ids[j]])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ids[i] < ids[j]
	})
	return ids
}
