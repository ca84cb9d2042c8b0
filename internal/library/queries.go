package library

import (
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/domain/ordering"
)

// Flashcards returns every flashcard in creation order.
func (l *Library) Flashcards() []domain.Flashcard {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Flashcard, 0, len(l.flashcardIDs))
	for _, id := range l.flashcardIDs {
		out = append(out, l.flashcards[id])
	}
	return out
}

// Wordlists returns every wordlist in creation order.
func (l *Library) Wordlists() []domain.Wordlist {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Wordlist, 0, len(l.wordlistIDs))
	for _, id := range l.wordlistIDs {
		out = append(out, cloneWordlist(l.wordlists[id]))
	}
	return out
}

// Folders returns every folder in creation order.
func (l *Library) Folders() []domain.Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Folder, 0, len(l.folderIDs))
	for _, id := range l.folderIDs {
		out = append(out, l.folders[id])
	}
	return out
}

// GetFlashcard looks up a flashcard by id.
func (l *Library) GetFlashcard(id string) (domain.Flashcard, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	card, ok := l.flashcards[id]
	return card, ok
}

// GetWordlist looks up a wordlist by id.
func (l *Library) GetWordlist(id string) (domain.Wordlist, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	wl, ok := l.wordlists[id]
	if !ok {
		return domain.Wordlist{}, false
	}
	return cloneWordlist(wl), true
}

// GetFolder looks up a folder by id.
func (l *Library) GetFolder(id string) (domain.Folder, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	folder, ok := l.folders[id]
	return folder, ok
}

// WordlistFlashcards returns all wordlist memberships in insertion order.
func (l *Library) WordlistFlashcards() []domain.WordlistFlashcard {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.wordlistCards.list()
}

// FolderWordlists returns all folder memberships in insertion order.
func (l *Library) FolderWordlists() []domain.FolderWordlist {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.folderWordlists.list()
}

// WordlistCards resolves a wordlist's member flashcards in the order they
// were linked. The second result is false when the wordlist does not exist.
func (l *Library) WordlistCards(wordlistID string) ([]domain.Flashcard, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.wordlists[wordlistID]; !ok {
		return nil, false
	}
	return l.wordlistCardsLocked(wordlistID), true
}

// OrderedCards resolves a wordlist's member flashcards and arranges them by
// the wordlist's order strategy.
func (l *Library) OrderedCards(wordlistID string) ([]domain.Flashcard, bool) {
	l.mu.RLock()
	wl, ok := l.wordlists[wordlistID]
	if !ok {
		l.mu.RUnlock()
		return nil, false
	}
	cards := l.wordlistCardsLocked(wordlistID)
	wl = cloneWordlist(wl)
	l.mu.RUnlock()

	return ordering.Apply(cards, wl.Order, wl.ShuffleSeed), true
}

// FolderWordlistsOf resolves the wordlists inside a folder in the order
// they were added. The second result is false when the folder does not exist.
func (l *Library) FolderWordlistsOf(folderID string) ([]domain.Wordlist, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.folders[folderID]; !ok {
		return nil, false
	}

	ids := l.folderWordlists.childrenOf(folderID)
	out := make([]domain.Wordlist, 0, len(ids))
	for _, id := range ids {
		if wl, ok := l.wordlists[id]; ok {
			out = append(out, cloneWordlist(wl))
		}
	}
	return out, true
}

// WordlistsContaining returns the wordlists a flashcard belongs to, in
// wordlist creation order.
func (l *Library) WordlistsContaining(flashcardID string) []domain.Wordlist {
	l.mu.RLock()
	defer l.mu.RUnlock()

	member := make(map[string]struct{})
	for _, id := range l.wordlistCards.parentsOf(flashcardID) {
		member[id] = struct{}{}
	}
	out := make([]domain.Wordlist, 0, len(member))
	for _, id := range l.wordlistIDs {
		if _, ok := member[id]; ok {
			out = append(out, cloneWordlist(l.wordlists[id]))
		}
	}
	return out
}

// MembershipCount returns how many flashcards a wordlist holds.
func (l *Library) MembershipCount(wordlistID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.wordlistCards.count(wordlistID)
}

func (l *Library) wordlistCardsLocked(wordlistID string) []domain.Flashcard {
	ids := l.wordlistCards.childrenOf(wordlistID)
	out := make([]domain.Flashcard, 0, len(ids))
	for _, id := range ids {
		if card, ok := l.flashcards[id]; ok {
			out = append(out, card)
		}
	}
	return out
}
