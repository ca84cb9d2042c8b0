package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordhoard/internal/platform/logger"
	"github.com/phrazzld/wordhoard/internal/redact"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON encodes data before touching the response, so an
// unencodable value turns into a plain 500 instead of a truncated body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("response encoding failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// RespondWithError writes an ErrorResponse without logging a cause.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog sends userMessage to the client and logs err with
// secrets redacted. Server errors log at ERROR, client errors at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	ctx := r.Context()
	traceID := GetTraceID(ctx)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log := logger.FromContext(ctx)
	if log.Enabled(ctx, level) {
		attrs := []slog.Attr{
			slog.String("trace_id", traceID),
			slog.String("route", r.Method+" "+r.URL.Path),
			slog.Int("status", status),
			slog.String("message", userMessage),
		}
		if err != nil {
			attrs = append(attrs,
				slog.String("error", redact.Error(err)),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		log.LogAttrs(ctx, level, "request failed", attrs...)
	}

	RespondWithJSON(w, r, status, ErrorResponse{Error: userMessage, TraceID: traceID})
}
