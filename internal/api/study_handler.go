package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/generation"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
)

// generationTimeout bounds a single examples or quiz request, retries included.
const generationTimeout = 60 * time.Second

// StudyHandler serves generated study content for a wordlist. Generation
// reads the library but never changes it.
type StudyHandler struct {
	lib       *library.Library
	generator generation.Generator
	logger    *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(lib *library.Library, generator generation.Generator, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for StudyHandler")
	}
	return &StudyHandler{
		lib:       lib,
		generator: generator,
		logger:    logger.With(slog.String("component", "study_handler")),
	}
}

// Examples handles POST /api/wordlists/{id}/examples
func (h *StudyHandler) Examples(w http.ResponseWriter, r *http.Request) {
	id, name, cards, ok := h.wordlist(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	examples, err := h.generator.GenerateExamples(ctx, name, cards)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("examples generated",
		slog.String("wordlist_id", id),
		slog.Int("words", len(examples)))
	shared.RespondWithJSON(w, r, http.StatusOK, ExamplesResponse{WordlistID: id, Examples: examples})
}

// Quiz handles POST /api/wordlists/{id}/quiz
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	id, name, cards, ok := h.wordlist(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	questions, err := h.generator.GenerateQuiz(ctx, name, cards)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("quiz generated",
		slog.String("wordlist_id", id),
		slog.Int("questions", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{WordlistID: id, Questions: questions})
}

// wordlist resolves the {id} path parameter to the wordlist's name and
// ordered cards.
func (h *StudyHandler) wordlist(
	w http.ResponseWriter,
	r *http.Request,
) (string, string, []domain.Flashcard, bool) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return "", "", nil, false
	}
	wl, ok := h.lib.GetWordlist(id)
	if !ok {
		HandleAPIError(w, r, ErrWordlistNotFound)
		return "", "", nil, false
	}
	cards, ok := h.lib.OrderedCards(id)
	if !ok {
		HandleAPIError(w, r, ErrWordlistNotFound)
		return "", "", nil, false
	}
	return id, wl.Name, cards, true
}
