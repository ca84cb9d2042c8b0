package api

import (
	"github.com/go-chi/chi/v5"
)

// Handlers groups every handler mounted under /api.
type Handlers struct {
	Library    *LibraryHandler
	Flashcards *FlashcardHandler
	Wordlists  *WordlistHandler
	Folders    *FolderHandler
	Sessions   *SessionHandler
	Study      *StudyHandler
}

// RegisterRoutes mounts the API on r. Callers add middleware and the
// /api prefix.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get("/stats", h.Library.Stats)
	r.Get("/library", h.Library.Export)
	r.Put("/library", h.Library.Import)
	r.Post("/library/reset", h.Library.Reset)

	r.Route("/flashcards", func(r chi.Router) {
		r.Get("/", h.Flashcards.List)
		r.Post("/", h.Flashcards.Create)
		r.Get("/{id}", h.Flashcards.Get)
		r.Delete("/{id}", h.Flashcards.Delete)
		r.Put("/{id}/comment", h.Flashcards.UpdateComment)
		r.Post("/{id}/bump", h.Flashcards.Bump)
	})

	r.Route("/wordlists", func(r chi.Router) {
		r.Get("/", h.Wordlists.List)
		r.Post("/", h.Wordlists.Create)
		r.Get("/{id}", h.Wordlists.Get)
		r.Delete("/{id}", h.Wordlists.Delete)
		r.Put("/{id}/order", h.Wordlists.Reorder)
		r.Get("/{id}/cards", h.Wordlists.Cards)
		r.Put("/{id}/cards/{cardID}", h.Wordlists.AddCard)
		r.Delete("/{id}/cards/{cardID}", h.Wordlists.RemoveCard)
		r.Post("/{id}/examples", h.Study.Examples)
		r.Post("/{id}/quiz", h.Study.Quiz)
	})

	r.Route("/folders", func(r chi.Router) {
		r.Get("/", h.Folders.List)
		r.Post("/", h.Folders.Create)
		r.Get("/{id}", h.Folders.Get)
		r.Delete("/{id}", h.Folders.Delete)
		r.Get("/{id}/wordlists", h.Folders.Wordlists)
		r.Put("/{id}/wordlists/{wordlistID}", h.Folders.AddWordlist)
		r.Delete("/{id}/wordlists/{wordlistID}", h.Folders.RemoveWordlist)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Sessions.Start)
		r.Get("/{id}", h.Sessions.Get)
		r.Delete("/{id}", h.Sessions.End)
		r.Post("/{id}/confirm", h.Sessions.Confirm)
		r.Post("/{id}/skip", h.Sessions.Skip)
		r.Post("/{id}/reveal", h.Sessions.Reveal)
		r.Post("/{id}/shuffle", h.Sessions.Shuffle)
	})
}
