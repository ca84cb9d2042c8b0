// Package domain contains the core vocabulary entities of the application:
// flashcards, wordlists, folders and the join rows linking them. It holds
// the capacity limits and the validation rules those entities must satisfy,
// independent of how the library is stored or delivered.
package domain
