package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStrategy controls the sequence in which a wordlist's cards are presented.
type OrderStrategy string

// Possible order strategies
const (
	OrderCreatedAt OrderStrategy = "created_at"
	OrderAlpha     OrderStrategy = "alpha"
	OrderShuffle   OrderStrategy = "shuffle"
)

// IsValid reports whether o is one of the known strategies.
func (o OrderStrategy) IsValid() bool {
	switch o {
	case OrderCreatedAt, OrderAlpha, OrderShuffle:
		return true
	default:
		return false
	}
}

// ParseOrderStrategy converts s to an OrderStrategy. An empty string yields
// OrderCreatedAt.
func ParseOrderStrategy(s string) (OrderStrategy, error) {
	if s == "" {
		return OrderCreatedAt, nil
	}
	o := OrderStrategy(strings.ToLower(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
	return o, nil
}

// Wordlist is a named deck of flashcards. Membership lives in
// WordlistFlashcard rows, not in the wordlist itself.
//
// ShuffleSeed is nil until the order first becomes OrderShuffle. Every switch
// into OrderShuffle draws a new seed; switching away keeps the old one.
type Wordlist struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Comment     string        `json:"comment"`
	Order       OrderStrategy `json:"order"`
	ShuffleSeed *float64      `json:"shuffle_seed,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CreatedBy   string        `json:"created_by"`
	UpdatedBy   string        `json:"updated_by,omitempty"`
}

// Validate checks if the Wordlist has valid data.
func (w *Wordlist) Validate() error {
	if w.ID == "" {
		return NewValidationError("id", "cannot be empty", nil)
	}
	if strings.TrimSpace(w.Name) == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	if !w.Order.IsValid() {
		return NewValidationError("order", "must be one of created_at, alpha, shuffle", ErrInvalidOrder)
	}
	return nil
}
