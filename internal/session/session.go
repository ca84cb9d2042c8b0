package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/domain"
)

// Mode selects how a session presents cards.
type Mode string

const (
	ModeLearn Mode = "learn"
	ModeTest  Mode = "test"
)

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLearn, ModeTest:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Library is the slice of the library store a session needs.
type Library interface {
	GetWordlist(id string) (domain.Wordlist, bool)
	GetFlashcard(id string) (domain.Flashcard, bool)
	OrderedCards(wordlistID string) ([]domain.Flashcard, bool)
	BumpFrequency(flashcardID string)
	ReorderWordlist(wordlistID string, order domain.OrderStrategy) error
}

// State is a point-in-time view of a session.
type State struct {
	ID         uuid.UUID        `json:"id"`
	WordlistID string           `json:"wordlist_id"`
	Mode       Mode             `json:"mode"`
	Position   int              `json:"position"`
	Total      int              `json:"total"`
	Revealed   bool             `json:"revealed"`
	Card       domain.Flashcard `json:"card"`
	StartedAt  time.Time        `json:"started_at"`
}

// Session walks the cards of one wordlist.
type Session struct {
	mu sync.Mutex

	id         uuid.UUID
	lib        Library
	wordlistID string
	mode       Mode
	cards      []domain.Flashcard
	idx        int
	revealed   bool
	startedAt  time.Time
	lastUsed   time.Time
}

// Start opens a session on wordlistID.
func Start(lib Library, wordlistID string, mode Mode) (*Session, error) {
	if mode != ModeLearn && mode != ModeTest {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if _, ok := lib.GetWordlist(wordlistID); !ok {
		return nil, ErrWordlistNotFound
	}
	cards, _ := lib.OrderedCards(wordlistID)
	if len(cards) == 0 {
		return nil, ErrEmptyWordlist
	}

	now := time.Now().UTC()
	return &Session{
		id:         uuid.New(),
		lib:        lib,
		wordlistID: wordlistID,
		mode:       mode,
		cards:      cards,
		startedAt:  now,
		lastUsed:   now,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Mode returns the session mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Current returns the card under the cursor, refreshed from the library so
// frequency and comment reflect recent changes. A card deleted since the
// session started is returned as it was at start.
func (s *Session) Current() domain.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// Position returns the 1-based cursor position and the number of cards.
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx + 1, len(s.cards)
}

// Revealed reports whether the current card's meaning is showing.
func (s *Session) Revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

// Confirm marks the current card as known: its frequency is bumped and the
// cursor advances. Learn sessions only.
func (s *Session) Confirm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeLearn {
		return ErrNotLearnMode
	}
	s.lib.BumpFrequency(s.cards[s.idx].ID)
	s.advanceLocked()
	return nil
}

// Skip advances the cursor without touching the card.
func (s *Session) Skip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
}

// Reveal shows the current card's meaning. The first reveal of a visit
// bumps the card's frequency. Test sessions only.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeTest {
		return ErrNotTestMode
	}
	if !s.revealed {
		s.lib.BumpFrequency(s.cards[s.idx].ID)
		s.revealed = true
	}
	s.touchLocked()
	return nil
}

// Shuffle switches the wordlist to shuffle order with a fresh seed and
// reloads the cards. The cursor position is kept. Learn sessions only.
func (s *Session) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeLearn {
		return ErrNotLearnMode
	}
	if err := s.lib.ReorderWordlist(s.wordlistID, domain.OrderShuffle); err != nil {
		return err
	}
	cards, ok := s.lib.OrderedCards(s.wordlistID)
	if !ok {
		return ErrWordlistNotFound
	}
	if len(cards) == 0 {
		return ErrEmptyWordlist
	}
	s.cards = cards
	s.idx %= len(cards)
	s.revealed = false
	s.touchLocked()
	return nil
}

// State returns a view of the session. In a test session the meaning and
// comment stay blank until the card is revealed.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.currentLocked()
	if s.mode == ModeTest && !s.revealed {
		card.Meaning = ""
		card.Comment = ""
	}
	return State{
		ID:         s.id,
		WordlistID: s.wordlistID,
		Mode:       s.mode,
		Position:   s.idx + 1,
		Total:      len(s.cards),
		Revealed:   s.revealed,
		Card:       card,
		StartedAt:  s.startedAt,
	}
}

func (s *Session) currentLocked() domain.Flashcard {
	card := s.cards[s.idx]
	if live, ok := s.lib.GetFlashcard(card.ID); ok {
		return live
	}
	return card
}

func (s *Session) advanceLocked() {
	s.idx = (s.idx + 1) % len(s.cards)
	s.revealed = false
	s.touchLocked()
}

func (s *Session) touchLocked() {
	s.lastUsed = time.Now().UTC()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
