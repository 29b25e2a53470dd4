package redis

import (
	"context"
	"sync"
	"time"

	"classquiz/internal/live"
	"github.com/redis/go-redis/v9"
)

const markerTimeout = 5 * time.Second

// SessionStore is a Redis-aware implementation of live.SessionStore.
// Notes:
//   - Session state itself stays in a local map; the coordinator's broadcast
//     path requires in-process state.
//   - Redis holds a liveness marker per session so operators (and sibling
//     instances) can see which quizzes are live, with a TTL acting as a
//     safety net against the store's unbounded retention.
//   - Marker writes run asynchronously: store methods are called from under
//     the coordinator's mutex and must never wait on the network.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*live.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	// The marker is best-effort and must not hold up the caller: the
	// coordinator calls GetOrCreate under its global mutex, so the network
	// write happens off this goroutine.
	go s.markLive(sessionID)
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
	go s.clearLive(sessionID)
}

func (s *SessionStore) markLive(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), markerTimeout)
	defer cancel()
	_ = s.client.Set(ctx, s.key(sessionID), "1", s.ttl).Err()
}

func (s *SessionStore) clearLive(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), markerTimeout)
	defer cancel()
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:live:" + sessionID
}
