package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
)

// LibraryHandler serves whole-library operations: stats, export, import
// and reset.
type LibraryHandler struct {
	lib    *library.Library
	logger *slog.Logger
}

// NewLibraryHandler creates a new LibraryHandler
func NewLibraryHandler(lib *library.Library, logger *slog.Logger) *LibraryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LibraryHandler")
	}
	return &LibraryHandler{
		lib:    lib,
		logger: logger.With(slog.String("component", "library_handler")),
	}
}

// Stats handles GET /api/stats
func (h *LibraryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.lib.Stats())
}

// Export handles GET /api/library
func (h *LibraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.lib.Export())
}

// Import handles PUT /api/library. The body is a full snapshot; the
// current library is replaced only if the snapshot is valid.
func (h *LibraryHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var snap library.Snapshot
	if err := shared.DecodeJSON(w, r, &snap); err != nil {
		HandleAPIError(w, r, decodeError(err))
		return
	}
	if err := h.lib.Import(snap); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	stats := h.lib.Stats()
	log.Info("library imported",
		slog.Int("flashcards", stats.Flashcards),
		slog.Int("wordlists", stats.Wordlists),
		slog.Int("folders", stats.Folders))
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Reset handles POST /api/library/reset
func (h *LibraryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.lib.Reset()
	logger.FromContextOrDefault(r.Context(), h.logger).Info("library reset")
	w.WriteHeader(http.StatusNoContent)
}
