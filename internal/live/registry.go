package live

// ConnectionInfo ties a live connection back to the session and participant it
// represents, so a bare disconnect can be resolved without the caller
// re-supplying that context.
type ConnectionInfo struct {
	SessionID   string
	UserID      string
	DisplayName string
}

// Registry maps connection identifiers to their session association. It has no
// internal locking: the Coordinator serializes all access under its own mutex.
type Registry struct {
	entries map[string]ConnectionInfo
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]ConnectionInfo)}
}

// Register inserts or overwrites the entry for connID. Idempotent per
// connection identifier.
func (r *Registry) Register(connID string, info ConnectionInfo) {
	if _, ok := r.entries[connID]; !ok {
		r.order = append(r.order, connID)
	}
	r.entries[connID] = info
}

// Lookup returns the association for connID, if any.
func (r *Registry) Lookup(connID string) (ConnectionInfo, bool) {
	info, ok := r.entries[connID]
	return info, ok
}

// Remove deletes the entry for connID; no-op if absent.
func (r *Registry) Remove(connID string) {
	if _, ok := r.entries[connID]; !ok {
		return
	}
	delete(r.entries, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ConnectionsIn returns the identifiers of every connection currently
// associated with sessionID, in registration order.
func (r *Registry) ConnectionsIn(sessionID string) []string {
	var ids []string
	for _, id := range r.order {
		if r.entries[id].SessionID == sessionID {
			ids = append(ids, id)
		}
	}
	return ids
}
