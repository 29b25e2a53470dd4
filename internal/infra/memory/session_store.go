package memory

import (
	"sync"

	"classquiz/internal/live"
)

// SessionStore is the in-memory implementation of live.SessionStore. Sessions
// accumulate until Delete is called or the process restarts; that unbounded
// retention is a known bound of the ephemeral design.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*live.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*live.Session),
	}
}

func (s *SessionStore) GetOrCreate(sessionID string) *live.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := live.NewSession(sessionID)
	s.sessions[sessionID] = session
	return session
}

func (s *SessionStore) Get(sessionID string) (*live.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions are currently held, for operator visibility.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
