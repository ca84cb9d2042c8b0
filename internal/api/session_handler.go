package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/platform/logger"
	"github.com/phrazzld/wordhoard/internal/session"
)

// SessionHandler handles learn and test session requests
type SessionHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Manager, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// Start handles POST /api/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	s, err := h.sessions.Start(req.WordlistID, mode)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("session started",
		slog.String("session_id", s.ID().String()),
		slog.String("wordlist_id", req.WordlistID),
		slog.String("mode", string(mode)))
	shared.RespondWithJSON(w, r, http.StatusCreated, s.State())
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, s.State())
}

// End handles DELETE /api/sessions/{id}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.sessions.End(s.ID())
	w.WriteHeader(http.StatusNoContent)
}

// Confirm handles POST /api/sessions/{id}/confirm
func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*session.Session).Confirm)
}

// Skip handles POST /api/sessions/{id}/skip
func (h *SessionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(s *session.Session) error {
		s.Skip()
		return nil
	})
}

// Reveal handles POST /api/sessions/{id}/reveal
func (h *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*session.Session).Reveal)
}

// Shuffle handles POST /api/sessions/{id}/shuffle
func (h *SessionHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*session.Session).Shuffle)
}

// act runs op on the addressed session and responds with its new state.
func (h *SessionHandler) act(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := op(s); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, s.State())
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	raw, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("id", "must be a UUID", nil))
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}
	return s, true
}
