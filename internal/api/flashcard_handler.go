package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
)

// FlashcardHandler handles flashcard-related HTTP requests
type FlashcardHandler struct {
	lib    *library.Library
	logger *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(lib *library.Library, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}
	return &FlashcardHandler{
		lib:    lib,
		logger: logger.With(slog.String("component", "flashcard_handler")),
	}
}

// List handles GET /api/flashcards
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.lib.Flashcards())
}

// Create handles POST /api/flashcards
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFlashcardRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	card, err := h.lib.AddFlashcard(library.NewFlashcard{
		Word:         req.Word,
		DictionaryID: req.DictionaryID,
		Meaning:      req.Meaning,
		AudioURL:     req.AudioURL,
		Comment:      req.Comment,
		Frequency:    req.Frequency,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("flashcard created", slog.String("flashcard_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, h.response(card))
}

// Get handles GET /api/flashcards/{id}
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(card))
}

// Delete handles DELETE /api/flashcards/{id}. The card is also removed
// from every wordlist.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.lib.DeleteFlashcard(card.ID)
	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("flashcard deleted", slog.String("flashcard_id", card.ID))
	w.WriteHeader(http.StatusNoContent)
}

// UpdateComment handles PUT /api/flashcards/{id}/comment
func (h *FlashcardHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.lib.UpdateFlashcardComment(card.ID, req.Comment); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, _ := h.lib.GetFlashcard(card.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(updated))
}

// Bump handles POST /api/flashcards/{id}/bump
func (h *FlashcardHandler) Bump(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.lib.BumpFrequency(card.ID)

	updated, _ := h.lib.GetFlashcard(card.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(updated))
}

// lookup resolves the {id} path parameter, writing a 404 when it is unknown.
func (h *FlashcardHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.Flashcard, bool) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.Flashcard{}, false
	}
	card, ok := h.lib.GetFlashcard(id)
	if !ok {
		HandleAPIError(w, r, ErrFlashcardNotFound)
		return domain.Flashcard{}, false
	}
	return card, true
}

func (h *FlashcardHandler) response(card domain.Flashcard) FlashcardResponse {
	containing := h.lib.WordlistsContaining(card.ID)
	ids := make([]string, 0, len(containing))
	for _, wl := range containing {
		ids = append(ids, wl.ID)
	}
	return FlashcardResponse{Flashcard: card, WordlistIDs: ids}
}
