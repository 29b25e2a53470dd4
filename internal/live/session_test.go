package live

import (
	"errors"
	"testing"
	"time"

	"classquiz/internal/domain"
)

func TestSessionStateTransitions(t *testing.T) {
	s := NewSession("q1")
	if s.State() != StatePending {
		t.Fatalf("expected pending, got %s", s.State())
	}

	now := time.UnixMilli(1000)
	if err := s.Start(now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != StateActive || !s.StartedAt().Equal(now) {
		t.Fatalf("expected active at %v, got %s at %v", now, s.State(), s.StartedAt())
	}

	// Restart while active refreshes the start time.
	later := time.UnixMilli(2000)
	if err := s.Start(later); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !s.StartedAt().Equal(later) {
		t.Fatalf("expected refreshed start time, got %v", s.StartedAt())
	}

	s.End(later)
	if s.State() != StateEnded {
		t.Fatalf("expected ended, got %s", s.State())
	}
	if err := s.Start(later); !errors.Is(err, domain.ErrSessionEnded) {
		t.Fatalf("expected ErrSessionEnded, got %v", err)
	}

	// Ending again is allowed.
	s.End(time.UnixMilli(3000))
	if !s.EndedAt().Equal(time.UnixMilli(3000)) {
		t.Fatalf("expected refreshed end time, got %v", s.EndedAt())
	}
}

func TestSessionAnswersAreAppendOnly(t *testing.T) {
	s := NewSession("q1")
	for i := 1; i <= 5; i++ {
		got := s.RecordAnswer("u1", domain.Answer{QuestionID: i})
		if got != i {
			t.Fatalf("expected count %d, got %d", i, got)
		}
	}
	if s.AnswerCount("u1") != 5 {
		t.Fatalf("expected 5 answers, got %d", s.AnswerCount("u1"))
	}
	if s.AnswerCount("u2") != 0 {
		t.Fatalf("expected 0 answers for unknown user, got %d", s.AnswerCount("u2"))
	}
}

func TestSessionRemoveConnection(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u2", ConnectionID: "c2"})

	removed, total := s.RemoveConnection("c1")
	if removed != 1 || total != 1 {
		t.Fatalf("expected removal leaving 1, got removed=%d total=%d", removed, total)
	}
	if got := s.Participants(); len(got) != 1 || got[0].UserID != "u2" {
		t.Fatalf("expected u2 remaining, got %+v", got)
	}
	removed, total = s.RemoveConnection("c1")
	if removed != 0 || total != 1 {
		t.Fatalf("expected second removal to no-op, got removed=%d total=%d", removed, total)
	}
}

func TestSessionRemoveConnectionDropsAllEntries(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u1", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u2", ConnectionID: "c2"})

	removed, total := s.RemoveConnection("c1")
	if removed != 2 || total != 1 {
		t.Fatalf("expected both c1 entries removed, got removed=%d total=%d", removed, total)
	}
	if got := s.Participants(); len(got) != 1 || got[0].UserID != "u2" {
		t.Fatalf("expected only u2 remaining, got %+v", got)
	}
}
