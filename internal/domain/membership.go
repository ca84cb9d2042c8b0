package domain

import "time"

// WordlistFlashcard records that a flashcard belongs to a wordlist.
// The pair (WordlistID, FlashcardID) is unique.
type WordlistFlashcard struct {
	ID          string    `json:"id"`
	WordlistID  string    `json:"wordlist_id"`
	FlashcardID string    `json:"flashcard_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FolderWordlist records that a wordlist belongs to a folder.
// The pair (FolderID, WordlistID) is unique.
type FolderWordlist struct {
	ID         string    `json:"id"`
	FolderID   string    `json:"folder_id"`
	WordlistID string    `json:"wordlist_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats is the derived size of each top-level collection.
type Stats struct {
	Flashcards int `json:"flashcards"`
	Wordlists  int `json:"wordlists"`
	Folders    int `json:"folders"`
}
