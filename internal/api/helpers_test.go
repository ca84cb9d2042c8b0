package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wordhoard/internal/api/middleware"
	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/generation"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/session"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a generation.Generator driven by function fields.
type fakeGenerator struct {
	GenerateExamplesFn func(ctx context.Context, name string, cards []domain.Flashcard) ([]generation.ExampleSentence, error)

	GenerateQuizFn func(ctx context.Context, name string, cards []domain.Flashcard) ([]generation.QuizQuestion, error)
}

func (f *fakeGenerator) GenerateExamples(
	ctx context.Context,
	name string,
	cards []domain.Flashcard,
) ([]generation.ExampleSentence, error) {
	return f.GenerateExamplesFn(ctx, name, cards)
}

func (f *fakeGenerator) GenerateQuiz(
	ctx context.Context,
	name string,
	cards []domain.Flashcard,
) ([]generation.QuizQuestion, error) {
	return f.GenerateQuizFn(ctx, name, cards)
}

type testAPI struct {
	lib      *library.Library
	sessions *session.Manager
	handler  http.Handler
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAPI(t *testing.T, gen generation.Generator) *testAPI {
	t.Helper()
	logger := discardLogger()

	n := 0
	lib := library.New(
		library.WithLogger(logger),
		library.WithIDGenerator(func() (string, error) {
			n++
			return fmt.Sprintf("id-%d", n), nil
		}),
		library.WithSeedSource(func() float64 { return 0.5 }),
	)
	sessions := session.NewManager(lib, logger)
	if gen == nil {
		gen = generation.NewStubGenerator(7)
	}

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, Handlers{
			Library:    NewLibraryHandler(lib, logger),
			Flashcards: NewFlashcardHandler(lib, logger),
			Wordlists:  NewWordlistHandler(lib, logger),
			Folders:    NewFolderHandler(lib, logger),
			Sessions:   NewSessionHandler(sessions, logger),
			Study:      NewStudyHandler(lib, gen, logger),
		})
	})

	return &testAPI{lib: lib, sessions: sessions, handler: r}
}

// do sends a request. A string body is sent verbatim; anything else is
// JSON encoded; nil sends no body.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// requireError asserts the status and error message of an error response.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	resp := decodeBody[shared.ErrorResponse](t, rec)
	require.Equal(t, message, resp.Error)
	require.Len(t, resp.TraceID, 32)
}

func (a *testAPI) addCard(t *testing.T, word string) domain.Flashcard {
	t.Helper()
	card, err := a.lib.AddFlashcard(library.NewFlashcard{Word: word, Meaning: "meaning of " + word})
	require.NoError(t, err)
	return card
}

func (a *testAPI) addWordlist(t *testing.T, name string, cards ...domain.Flashcard) domain.Wordlist {
	t.Helper()
	wl, err := a.lib.AddWordlist(library.NewWordlist{Name: name})
	require.NoError(t, err)
	for _, c := range cards {
		require.NoError(t, a.lib.AddFlashcardToWordlist(wl.ID, c.ID))
	}
	return wl
}

func words(cards []domain.Flashcard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Word
	}
	return out
}
