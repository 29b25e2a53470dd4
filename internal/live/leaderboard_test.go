package live

import (
	"testing"
	"time"

	"classquiz/internal/domain"
)

func submitN(s *Session, userID string, n int) {
	for i := 0; i < n; i++ {
		s.RecordAnswer(userID, domain.Answer{QuestionID: i, Value: 0, SubmittedAt: time.UnixMilli(0)})
	}
}

func TestLeaderboardScoresTenPerAnswer(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", DisplayName: "Alice", ConnectionID: "c1"})
	submitN(s, "u1", 3)

	entries := Leaderboard(s)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Score != 30 || entries[0].AnswersCount != 3 {
		t.Fatalf("expected score 30 for 3 answers, got %+v", entries[0])
	}
}

func TestLeaderboardSortsDescending(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", DisplayName: "Alice", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u2", DisplayName: "Bob", ConnectionID: "c2"})
	s.AddParticipant(domain.Participant{UserID: "u3", DisplayName: "Carol", ConnectionID: "c3"})
	submitN(s, "u1", 1)
	submitN(s, "u2", 3)
	submitN(s, "u3", 2)

	entries := Leaderboard(s)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].UserID != "u2" || entries[1].UserID != "u3" || entries[2].UserID != "u1" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestLeaderboardTiesKeepSubmissionOrder(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", DisplayName: "Alice", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u2", DisplayName: "Bob", ConnectionID: "c2"})
	submitN(s, "u2", 2)
	submitN(s, "u1", 2)

	entries := Leaderboard(s)
	if entries[0].UserID != "u2" || entries[1].UserID != "u1" {
		t.Fatalf("expected first-submitter first on ties, got %+v", entries)
	}
}

func TestLeaderboardOmitsZeroAnswerParticipants(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", DisplayName: "Alice", ConnectionID: "c1"})
	s.AddParticipant(domain.Participant{UserID: "u2", DisplayName: "Bob", ConnectionID: "c2"})
	submitN(s, "u1", 1)

	entries := Leaderboard(s)
	if len(entries) != 1 || entries[0].UserID != "u1" {
		t.Fatalf("expected only u1 present, got %+v", entries)
	}
}

func TestLeaderboardNamesDepartedUsersUnknown(t *testing.T) {
	s := NewSession("q1")
	s.AddParticipant(domain.Participant{UserID: "u1", DisplayName: "Alice", ConnectionID: "c1"})
	submitN(s, "u1", 1)
	s.RemoveConnection("c1")

	entries := Leaderboard(s)
	if len(entries) != 1 || entries[0].DisplayName != "Unknown" {
		t.Fatalf("expected departed user named Unknown, got %+v", entries)
	}
}
