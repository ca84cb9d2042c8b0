package api

import (
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/generation"
)

// CreateFlashcardRequest defines the payload for POST /api/flashcards.
// Comment length is enforced by the library so the message matches the
// one every other client sees.
type CreateFlashcardRequest struct {
	Word         string `json:"word"          validate:"required,max=200"`
	DictionaryID string `json:"dictionary_id" validate:"max=100"`
	Meaning      string `json:"meaning"       validate:"required"`
	AudioURL     string `json:"audio_url"     validate:"omitempty,url"`
	Comment      string `json:"comment"`
	Frequency    int    `json:"frequency"     validate:"min=0"`
}

// UpdateCommentRequest defines the payload for PUT /api/flashcards/{id}/comment.
type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

// CreateWordlistRequest defines the payload for POST /api/wordlists.
type CreateWordlistRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Comment string `json:"comment"`
	Order   string `json:"order"   validate:"omitempty,oneof=created_at alpha shuffle"`
}

// ReorderWordlistRequest defines the payload for PUT /api/wordlists/{id}/order.
type ReorderWordlistRequest struct {
	Order string `json:"order" validate:"required,oneof=created_at alpha shuffle"`
}

// CreateFolderRequest defines the payload for POST /api/folders.
type CreateFolderRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Comment string `json:"comment"`
}

// StartSessionRequest defines the payload for POST /api/sessions.
type StartSessionRequest struct {
	WordlistID string `json:"wordlist_id" validate:"required"`
	Mode       string `json:"mode"        validate:"required,oneof=learn test"`
}

// FlashcardResponse is a flashcard plus the wordlists that contain it.
type FlashcardResponse struct {
	domain.Flashcard
	WordlistIDs []string `json:"wordlist_ids"`
}

// WordlistResponse is a wordlist plus its member count.
type WordlistResponse struct {
	domain.Wordlist
	CardCount int `json:"card_count"`
}

// FolderResponse is a folder plus the ids of its wordlists.
type FolderResponse struct {
	domain.Folder
	WordlistIDs []string `json:"wordlist_ids"`
}

// ExamplesResponse is returned by POST /api/wordlists/{id}/examples.
type ExamplesResponse struct {
	WordlistID string                       `json:"wordlist_id"`
	Examples   []generation.ExampleSentence `json:"examples"`
}

// QuizResponse is returned by POST /api/wordlists/{id}/quiz.
type QuizResponse struct {
	WordlistID string                    `json:"wordlist_id"`
	Questions  []generation.QuizQuestion `json:"questions"`
}
