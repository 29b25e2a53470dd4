package live

import (
	"reflect"
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	r.Register("c1", ConnectionInfo{SessionID: "q1", UserID: "u1", DisplayName: "Alice"})
	info, ok := r.Lookup("c1")
	if !ok || info.UserID != "u1" {
		t.Fatalf("expected registered entry, got %+v ok=%v", info, ok)
	}

	// Re-register overwrites.
	r.Register("c1", ConnectionInfo{SessionID: "q2", UserID: "u1", DisplayName: "Alice"})
	info, _ = r.Lookup("c1")
	if info.SessionID != "q2" {
		t.Fatalf("expected overwrite, got %+v", info)
	}
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", ConnectionInfo{SessionID: "q1"})
	r.Remove("c1")
	r.Remove("c1")
	if _, ok := r.Lookup("c1"); ok {
		t.Fatalf("expected entry removed")
	}
}

func TestRegistryConnectionsInKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", ConnectionInfo{SessionID: "q1"})
	r.Register("c2", ConnectionInfo{SessionID: "q2"})
	r.Register("c3", ConnectionInfo{SessionID: "q1"})

	got := r.ConnectionsIn("q1")
	if !reflect.DeepEqual(got, []string{"c1", "c3"}) {
		t.Fatalf("expected [c1 c3], got %v", got)
	}
	if got := r.ConnectionsIn("empty"); got != nil {
		t.Fatalf("expected nil for unknown session, got %v", got)
	}
}
