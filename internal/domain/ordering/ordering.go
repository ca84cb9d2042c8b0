// Package ordering turns a wordlist's member flashcards into the sequence a
// learn or test session walks through, according to the wordlist's
// OrderStrategy.
package ordering

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/phrazzld/wordhoard/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// seedMix is xor-ed into the second PCG word so that a seed of 0 still
// produces a well-mixed stream.
const seedMix = 0x9e3779b97f4a7c15

// NewSeed returns a fresh shuffle seed in [0, 1).
func NewSeed() float64 {
	return rand.Float64()
}

// Apply returns cards in the order described by order. The input slice must
// already be in join insertion order and is never modified.
//
// Behavior per strategy:
//   - OrderCreatedAt: the input order is kept as is
//   - OrderAlpha: ascending by word with English collation, ties keep input order
//   - OrderShuffle: a seeded Fisher-Yates permutation; seed nil draws a fresh one
//
// Unknown strategies fall back to OrderCreatedAt.
func Apply(cards []domain.Flashcard, order domain.OrderStrategy, seed *float64) []domain.Flashcard {
	out := make([]domain.Flashcard, len(cards))
	copy(out, cards)

	switch order {
	case domain.OrderAlpha:
		sortAlpha(out)
	case domain.OrderShuffle:
		s := NewSeed()
		if seed != nil {
			s = *seed
		}
		Shuffle(out, s)
	}

	return out
}

// sortAlpha sorts cards by word using locale-aware comparison.
// A collator is not safe for concurrent use, so each call builds its own.
func sortAlpha(cards []domain.Flashcard) {
	c := collate.New(language.English, collate.Loose)
	sort.SliceStable(cards, func(i, j int) bool {
		return c.CompareString(cards[i].Word, cards[j].Word) < 0
	})
}

// Shuffle permutes cards in place. The permutation depends only on seed and
// len(cards), so the same seed over the same input always gives the same result.
func Shuffle(cards []domain.Flashcard, seed float64) {
	bits := math.Float64bits(seed)
	r := rand.New(rand.NewPCG(bits, bits^seedMix))
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
