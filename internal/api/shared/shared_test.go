package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/wordhoard/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
	}{
		{name: "valid", body: `{"name":"deck"}`},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "unknown field", body: `{"name":"deck","extra":1}`, errText: "invalid JSON body"},
		{name: "malformed", body: `{"name":`, errText: "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), req, &p)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, "deck", p.Name)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var p payload
	err := DecodeJSON(httptest.NewRecorder(), req, &p)
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, err, &maxErr)
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(payload{Name: "deck"}))

	err := ValidateRequest(payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'name'")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	id := GetTraceID(SetTraceID(ctx))
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, GetTraceID(SetTraceID(ctx)))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.WithValue(context.Background(), TraceIDKey, "trace-1")
	ctx = logger.WithLogger(ctx, log)
	req := httptest.NewRequest(http.MethodGet, "/api/wordlists/x", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred",
		assertErr("dial postgres://wordhoard:hunter2@db:5432/wordhoard failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrorResponse{Error: "An unexpected error occurred", TraceID: "trace-1"}, resp)

	logged := buf.String()
	assert.Contains(t, logged, `"level":"ERROR"`)
	assert.Contains(t, logged, "trace-1")
	assert.NotContains(t, logged, "hunter2")
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, req, http.StatusCreated, map[string]int{"flashcards": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"flashcards":3}`, rec.Body.String())
}

func TestRespondWithJSON_EncodeFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bad")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
