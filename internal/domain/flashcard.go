package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Flashcard is a single vocabulary entry: a word, its meaning, and the
// learner's own notes about it.
type Flashcard struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	DictionaryID string    `json:"dictionary_id,omitempty"`
	Meaning      string    `json:"meaning"`
	AudioURL     string    `json:"audio_url,omitempty"`
	Comment      string    `json:"comment"`
	Frequency    int       `json:"frequency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `json:"created_by"`
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == "" {
		return NewValidationError("id", "cannot be empty", nil)
	}
	if strings.TrimSpace(f.Word) == "" {
		return NewValidationError("word", "cannot be empty", nil)
	}
	if strings.TrimSpace(f.Meaning) == "" {
		return NewValidationError("meaning", "cannot be empty", nil)
	}
	if err := ValidateComment(f.Comment); err != nil {
		return err
	}
	if f.Frequency < 0 {
		return NewValidationError("frequency", "cannot be negative", nil)
	}
	return nil
}

// ValidateComment enforces MaxCommentLength on a flashcard comment.
func ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return NewValidationError(
			"",
			fmt.Sprintf("comment max length is %d characters", MaxCommentLength),
			nil,
		)
	}
	return nil
}
