package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
)

// WordlistHandler handles wordlist and wordlist membership requests
type WordlistHandler struct {
	lib    *library.Library
	logger *slog.Logger
}

// NewWordlistHandler creates a new WordlistHandler
func NewWordlistHandler(lib *library.Library, logger *slog.Logger) *WordlistHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WordlistHandler")
	}
	return &WordlistHandler{
		lib:    lib,
		logger: logger.With(slog.String("component", "wordlist_handler")),
	}
}

// List handles GET /api/wordlists
func (h *WordlistHandler) List(w http.ResponseWriter, r *http.Request) {
	wordlists := h.lib.Wordlists()
	resp := make([]WordlistResponse, 0, len(wordlists))
	for _, wl := range wordlists {
		resp = append(resp, h.response(wl))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /api/wordlists
func (h *WordlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWordlistRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	wl, err := h.lib.AddWordlist(library.NewWordlist{
		Name:    req.Name,
		Comment: req.Comment,
		Order:   domain.OrderStrategy(req.Order),
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("wordlist created", slog.String("wordlist_id", wl.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, h.response(wl))
}

// Get handles GET /api/wordlists/{id}
func (h *WordlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	wl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(wl))
}

// Delete handles DELETE /api/wordlists/{id}. Its card and folder
// memberships go with it; the flashcards themselves stay.
func (h *WordlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	wl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.lib.DeleteWordlist(wl.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /api/wordlists/{id}/order
func (h *WordlistHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	wl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req ReorderWordlistRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.lib.ReorderWordlist(wl.ID, domain.OrderStrategy(req.Order)); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, _ := h.lib.GetWordlist(wl.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(updated))
}

// Cards handles GET /api/wordlists/{id}/cards, returning members in the
// wordlist's order.
func (h *WordlistHandler) Cards(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	cards, ok := h.lib.OrderedCards(id)
	if !ok {
		HandleAPIError(w, r, ErrWordlistNotFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// AddCard handles PUT /api/wordlists/{id}/cards/{cardID}. Adding a card
// that is already a member succeeds without change.
func (h *WordlistHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	wl, cardID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}
	if err := h.lib.AddFlashcardToWordlist(wl.ID, cardID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("flashcard added to wordlist",
		slog.String("wordlist_id", wl.ID),
		slog.String("flashcard_id", cardID))
	w.WriteHeader(http.StatusNoContent)
}

// RemoveCard handles DELETE /api/wordlists/{id}/cards/{cardID}
func (h *WordlistHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	wl, cardID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}
	h.lib.RemoveFlashcardFromWordlist(wl.ID, cardID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *WordlistHandler) membershipParams(w http.ResponseWriter, r *http.Request) (domain.Wordlist, string, bool) {
	wl, ok := h.lookup(w, r)
	if !ok {
		return domain.Wordlist{}, "", false
	}
	cardID, err := pathParam(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.Wordlist{}, "", false
	}
	if _, ok := h.lib.GetFlashcard(cardID); !ok {
		HandleAPIError(w, r, ErrFlashcardNotFound)
		return domain.Wordlist{}, "", false
	}
	return wl, cardID, true
}

func (h *WordlistHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.Wordlist, bool) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.Wordlist{}, false
	}
	wl, ok := h.lib.GetWordlist(id)
	if !ok {
		HandleAPIError(w, r, ErrWordlistNotFound)
		return domain.Wordlist{}, false
	}
	return wl, true
}

func (h *WordlistHandler) response(wl domain.Wordlist) WordlistResponse {
	return WordlistResponse{Wordlist: wl, CardCount: h.lib.MembershipCount(wl.ID)}
}
