package live

// SessionStore holds the live state for every in-progress session, keyed by
// session (quiz) identifier. Implementations live in internal/infra.
type SessionStore interface {
	// GetOrCreate returns the existing session or creates an empty one.
	GetOrCreate(sessionID string) *Session
	// Get returns the session if present.
	Get(sessionID string) (*Session, bool)
	// Delete is explicit teardown. No coordinator event invokes it; ended
	// sessions linger until process restart or an operator sweep.
	Delete(sessionID string)
}
