package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardHandler_Create(t *testing.T) {
	api := newTestAPI(t, nil)

	t.Run("trims and stores", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/flashcards", map[string]any{
			"word":          "  focus ",
			"meaning":       "The center of interest or activity.",
			"dictionary_id": "wordnet",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		card := decodeBody[FlashcardResponse](t, rec)
		assert.Equal(t, "id-1", card.ID)
		assert.Equal(t, "focus", card.Word)
		assert.Equal(t, "demo-user", card.CreatedBy)
		assert.Empty(t, card.WordlistIDs)
		assert.Equal(t, 1, api.lib.Stats().Flashcards)
	})

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{
			name:    "missing meaning",
			body:    map[string]any{"word": "focus"},
			status:  http.StatusBadRequest,
			message: "Invalid meaning: required field",
		},
		{
			name:    "negative frequency",
			body:    map[string]any{"word": "focus", "meaning": "m", "frequency": -1},
			status:  http.StatusBadRequest,
			message: "Invalid frequency: too short",
		},
		{
			name:    "bad audio url",
			body:    map[string]any{"word": "focus", "meaning": "m", "audio_url": "not a url"},
			status:  http.StatusBadRequest,
			message: "Invalid audio_url: must be a URL",
		},
		{
			name:    "unknown field",
			body:    map[string]any{"word": "focus", "meaning": "m", "bogus": true},
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name:    "malformed json",
			body:    `{"word": `,
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name:    "empty body",
			body:    nil,
			status:  http.StatusBadRequest,
			message: "Request body is required",
		},
		{
			name:    "comment too long",
			body:    map[string]any{"word": "focus", "meaning": "m", "comment": strings.Repeat("x", 501)},
			status:  http.StatusBadRequest,
			message: "comment max length is 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := api.lib.Stats().Flashcards
			rec := api.do(t, http.MethodPost, "/api/flashcards", tt.body)
			requireError(t, rec, tt.status, tt.message)
			assert.Equal(t, before, api.lib.Stats().Flashcards)
		})
	}
}

func TestFlashcardHandler_GetListDelete(t *testing.T) {
	api := newTestAPI(t, nil)
	focus := api.addCard(t, "focus")
	eloquent := api.addCard(t, "eloquent")
	wl := api.addWordlist(t, "Deck", focus)

	rec := api.do(t, http.MethodGet, "/api/flashcards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"focus", "eloquent"}, words(decodeBody[[]domain.Flashcard](t, rec)))

	rec = api.do(t, http.MethodGet, "/api/flashcards/"+focus.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{wl.ID}, decodeBody[FlashcardResponse](t, rec).WordlistIDs)

	requireError(t, api.do(t, http.MethodGet, "/api/flashcards/missing", nil),
		http.StatusNotFound, "Flashcard not found")

	rec = api.do(t, http.MethodDelete, "/api/flashcards/"+focus.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, api.lib.MembershipCount(wl.ID), "membership removed with the card")

	requireError(t, api.do(t, http.MethodDelete, "/api/flashcards/"+focus.ID, nil),
		http.StatusNotFound, "Flashcard not found")

	_, ok := api.lib.GetFlashcard(eloquent.ID)
	assert.True(t, ok)
}

func TestFlashcardHandler_UpdateCommentAndBump(t *testing.T) {
	api := newTestAPI(t, nil)
	card := api.addCard(t, "resilient")
	path := "/api/flashcards/" + card.ID

	rec := api.do(t, http.MethodPut, path+"/comment", map[string]any{"comment": "Appears in tech culture pieces."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Appears in tech culture pieces.", decodeBody[FlashcardResponse](t, rec).Comment)

	// 500 multi-byte runes are within the limit.
	rec = api.do(t, http.MethodPut, path+"/comment", map[string]any{"comment": strings.Repeat("é", 500)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	requireError(t,
		api.do(t, http.MethodPut, path+"/comment", map[string]any{"comment": strings.Repeat("é", 501)}),
		http.StatusBadRequest, "comment max length is 500 characters")
	stored, _ := api.lib.GetFlashcard(card.ID)
	assert.Equal(t, strings.Repeat("é", 500), stored.Comment)

	rec = api.do(t, http.MethodPost, path+"/bump", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[FlashcardResponse](t, rec).Frequency)

	requireError(t, api.do(t, http.MethodPost, "/api/flashcards/missing/bump", nil),
		http.StatusNotFound, "Flashcard not found")
}
