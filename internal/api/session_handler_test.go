package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, api *testAPI, wordlistID, mode string) session.State {
	t.Helper()
	rec := api.do(t, http.MethodPost, "/api/sessions", map[string]any{"wordlist_id": wordlistID, "mode": mode})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[session.State](t, rec)
}

func TestSessionHandler_Learn(t *testing.T) {
	api := newTestAPI(t, nil)
	focus := api.addCard(t, "focus")
	eloquent := api.addCard(t, "eloquent")
	wl := api.addWordlist(t, "Deck", focus, eloquent)

	state := startSession(t, api, wl.ID, "learn")
	assert.Equal(t, session.ModeLearn, state.Mode)
	assert.Equal(t, 1, state.Position)
	assert.Equal(t, 2, state.Total)
	assert.Equal(t, "focus", state.Card.Word)
	assert.NotEmpty(t, state.Card.Meaning)
	base := "/api/sessions/" + state.ID.String()

	rec := api.do(t, http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state = decodeBody[session.State](t, rec)
	assert.Equal(t, 2, state.Position)
	assert.Equal(t, "eloquent", state.Card.Word)
	card, _ := api.lib.GetFlashcard(focus.ID)
	assert.Equal(t, 1, card.Frequency)

	rec = api.do(t, http.MethodPost, base+"/skip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[session.State](t, rec).Position, "cursor wraps around")
	card, _ = api.lib.GetFlashcard(eloquent.ID)
	assert.Zero(t, card.Frequency)

	requireError(t, api.do(t, http.MethodPost, base+"/reveal", nil),
		http.StatusConflict, "Reveal is only available in test mode")

	rec = api.do(t, http.MethodPost, base+"/shuffle", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reordered, _ := api.lib.GetWordlist(wl.ID)
	assert.Equal(t, domain.OrderShuffle, reordered.Order)
	assert.NotNil(t, reordered.ShuffleSeed)

	rec = api.do(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	requireError(t, api.do(t, http.MethodGet, base, nil), http.StatusNotFound, "Session not found")
	assert.Zero(t, api.sessions.Len())
}

func TestSessionHandler_Test(t *testing.T) {
	api := newTestAPI(t, nil)
	focus := api.addCard(t, "focus")
	wl := api.addWordlist(t, "Deck", focus)

	state := startSession(t, api, wl.ID, "test")
	assert.False(t, state.Revealed)
	assert.Equal(t, "focus", state.Card.Word)
	assert.Empty(t, state.Card.Meaning, "meaning hidden until reveal")
	base := "/api/sessions/" + state.ID.String()

	for i := 0; i < 2; i++ {
		rec := api.do(t, http.MethodPost, base+"/reveal", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		state = decodeBody[session.State](t, rec)
		assert.True(t, state.Revealed)
		assert.Equal(t, focus.Meaning, state.Card.Meaning)
	}
	card, _ := api.lib.GetFlashcard(focus.ID)
	assert.Equal(t, 1, card.Frequency, "one bump per visit")

	requireError(t, api.do(t, http.MethodPost, base+"/confirm", nil),
		http.StatusConflict, "Only available in learn mode")
	requireError(t, api.do(t, http.MethodPost, base+"/shuffle", nil),
		http.StatusConflict, "Only available in learn mode")

	rec := api.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[session.State](t, rec).Revealed)
}

func TestSessionHandler_Errors(t *testing.T) {
	api := newTestAPI(t, nil)
	empty := api.addWordlist(t, "Empty")

	requireError(t, api.do(t, http.MethodPost, "/api/sessions", map[string]any{"wordlist_id": empty.ID, "mode": "learn"}),
		http.StatusUnprocessableEntity, "Wordlist has no flashcards")
	requireError(t, api.do(t, http.MethodPost, "/api/sessions", map[string]any{"wordlist_id": "missing", "mode": "learn"}),
		http.StatusNotFound, "Wordlist not found")
	requireError(t, api.do(t, http.MethodPost, "/api/sessions", map[string]any{"wordlist_id": empty.ID, "mode": "review"}),
		http.StatusBadRequest, "Invalid mode: must be one of learn, test")
	requireError(t, api.do(t, http.MethodPost, "/api/sessions", map[string]any{"mode": "learn"}),
		http.StatusBadRequest, "Invalid wordlist_id: required field")
	requireError(t, api.do(t, http.MethodGet, "/api/sessions/not-a-uuid", nil),
		http.StatusBadRequest, "id must be a UUID")
	requireError(t, api.do(t, http.MethodGet, "/api/sessions/"+uuid.NewString(), nil),
		http.StatusNotFound, "Session not found")
	requireError(t, api.do(t, http.MethodPost, "/api/sessions/"+uuid.NewString()+"/skip", nil),
		http.StatusNotFound, "Session not found")
}
