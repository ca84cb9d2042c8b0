package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps the open sessions for one library.
type Manager struct {
	mu       sync.Mutex
	lib      Library
	sessions map[uuid.UUID]*Session
	logger   *slog.Logger
}

// NewManager creates a Manager over lib.
func NewManager(lib Library, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		lib:      lib,
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger.With("component", "session_manager"),
	}
}

// Start opens and registers a new session.
func (m *Manager) Start(wordlistID string, mode Mode) (*Session, error) {
	s, err := Start(m.lib, wordlistID, mode)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("session started",
		"session_id", s.ID(),
		"wordlist_id", wordlistID,
		"mode", mode,
		"open_sessions", count)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End closes a session. Ending an unknown session is a no-op.
func (m *Manager) End(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune ends every session idle for longer than maxIdle and returns how
// many were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("pruned idle sessions", "removed", removed, "open_sessions", len(m.sessions))
	}
	return removed
}
