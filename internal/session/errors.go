package session

import "errors"

var (
	// ErrWordlistNotFound is returned when starting a session on an unknown wordlist.
	ErrWordlistNotFound = errors.New("wordlist not found")

	// ErrEmptyWordlist is returned when the wordlist has no cards to study.
	ErrEmptyWordlist = errors.New("wordlist has no flashcards")

	// ErrNotTestMode is returned by operations only a test session supports.
	ErrNotTestMode = errors.New("operation requires a test session")

	// ErrNotLearnMode is returned by operations only a learn session supports.
	ErrNotLearnMode = errors.New("operation requires a learn session")

	// ErrInvalidMode is returned for a mode other than learn or test.
	ErrInvalidMode = errors.New("invalid session mode")

	// ErrSessionNotFound is returned by Manager for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
)
