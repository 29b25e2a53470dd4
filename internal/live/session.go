package live

import (
	"time"

	"classquiz/internal/domain"
)

// State is the lifecycle phase of a session.
type State int

const (
	// StatePending means the session exists (someone joined) but the quiz has
	// not been started.
	StatePending State = iota
	// StateActive means the quiz is running.
	StateActive
	// StateEnded means the quiz was ended. The session stays in the store;
	// late answers and leaderboard reads are still served.
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Session is the authoritative in-memory state of one live quiz run, keyed by
// the quiz identifier (one live run per quiz at a time). It has no internal
// locking: the Coordinator serializes all access.
type Session struct {
	ID string

	state     State
	startedAt time.Time
	endedAt   time.Time

	// participants in join order. Duplicate joins by the same user are kept
	// as-is; removal matches on connection identifier.
	participants []domain.Participant

	// answers per user, append-only. answerOrder records first-submission
	// order so leaderboard iteration is deterministic.
	answers     map[string][]domain.Answer
	answerOrder []string
}

func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		state:   StatePending,
		answers: make(map[string][]domain.Answer),
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) EndedAt() time.Time { return s.endedAt }

// AddParticipant appends a participant and returns the new participant count.
func (s *Session) AddParticipant(p domain.Participant) int {
	s.participants = append(s.participants, p)
	return len(s.participants)
}

// RemoveConnection drops every participant entry attached via connID (one
// connection can join more than once) and returns how many entries were
// removed along with the remaining participant count.
func (s *Session) RemoveConnection(connID string) (int, int) {
	kept := s.participants[:0]
	for _, p := range s.participants {
		if p.ConnectionID != connID {
			kept = append(kept, p)
		}
	}
	removed := len(s.participants) - len(kept)
	s.participants = kept
	return removed, len(s.participants)
}

// Participants returns the live participant list in join order.
func (s *Session) Participants() []domain.Participant {
	return s.participants
}

// Start transitions the session to active. Restarting an active session just
// refreshes the start time; starting an ended session is rejected.
func (s *Session) Start(now time.Time) error {
	if s.state == StateEnded {
		return domain.ErrSessionEnded
	}
	s.state = StateActive
	s.startedAt = now
	return nil
}

// End transitions the session to ended. Ending twice is allowed and refreshes
// the end time; the session is never dropped from the store here.
func (s *Session) End(now time.Time) {
	s.state = StateEnded
	s.endedAt = now
}

// RecordAnswer appends an answer to the user's sequence, creating it on first
// submission, and returns the user's new answer count. Answers are accepted in
// any state as long as the session exists.
func (s *Session) RecordAnswer(userID string, ans domain.Answer) int {
	if _, ok := s.answers[userID]; !ok {
		s.answerOrder = append(s.answerOrder, userID)
	}
	s.answers[userID] = append(s.answers[userID], ans)
	return len(s.answers[userID])
}

// AnswerCount returns how many answers the user has submitted.
func (s *Session) AnswerCount(userID string) int {
	return len(s.answers[userID])
}

// displayNameOf resolves a user's name from the participant list; users who
// already left resolve to "Unknown", matching the leaderboard contract.
func (s *Session) displayNameOf(userID string) string {
	for _, p := range s.participants {
		if p.UserID == userID {
			return p.DisplayName
		}
	}
	return "Unknown"
}
