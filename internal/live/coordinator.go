package live

import (
	"log"
	"sync"
	"time"

	"classquiz/internal/domain"
)

// Sender delivers one named event to one connection. Delivery is best-effort,
// at-most-once: no acknowledgment, no retry.
type Sender interface {
	Send(connID, event string, payload any)
}

// Coordinator is the event router for live quiz sessions. It owns the
// connection registry and the session store and is the only writer to either.
// A single mutex serializes every handler, giving each event the same
// read-modify-write atomicity a single-threaded event loop would: handlers
// never perform I/O while holding the lock, only the Sender fan-out, which is
// non-blocking.
//
// Handlers that reference an unknown session silently no-op; a stale or
// duplicate event must never take a session down for the others, so callers
// get no error channel. Nothing checks that the sender is allowed to perform
// actions such as start-quiz; see DESIGN.md.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	store    SessionStore
	sender   Sender
	now      func() time.Time
}

func NewCoordinator(store SessionStore, sender Sender) *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		store:    store,
		sender:   sender,
		now:      time.Now,
	}
}

// NewCoordinatorWithClock is test-only for deterministic timestamps.
func NewCoordinatorWithClock(store SessionStore, sender Sender, now func() time.Time) *Coordinator {
	c := NewCoordinator(store, sender)
	c.now = now
	return c
}

// Join registers the connection and adds the participant to the session,
// creating the session on first join. Duplicate joins by the same user are
// kept as separate participants.
func (c *Coordinator) Join(connID string, ev JoinQuiz) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := c.store.GetOrCreate(ev.QuizID)
	c.registry.Register(connID, ConnectionInfo{
		SessionID:   ev.QuizID,
		UserID:      ev.UserID,
		DisplayName: ev.UserName,
	})
	total := session.AddParticipant(domain.Participant{
		UserID:       ev.UserID,
		DisplayName:  ev.UserName,
		Role:         ev.UserType,
		ConnectionID: connID,
	})

	c.broadcast(ev.QuizID, EventUserJoined, UserJoined{
		UserID:            ev.UserID,
		UserName:          ev.UserName,
		UserType:          ev.UserType,
		TotalParticipants: total,
	})
	log.Printf("%s joined quiz %s", ev.UserName, ev.QuizID)
}

// Start activates the session and broadcasts the question set. No-op if the
// session does not exist; rejected if it already ended.
func (c *Coordinator) Start(connID string, ev StartQuiz) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.store.Get(ev.QuizID)
	if !ok {
		return
	}
	now := c.now()
	if err := session.Start(now); err != nil {
		log.Printf("quiz %s: start rejected: %v", ev.QuizID, err)
		return
	}

	c.broadcast(ev.QuizID, EventQuizStarted, QuizStarted{
		StartTime: now.UnixMilli(),
		Questions: ev.Questions,
	})
	log.Printf("quiz %s started", ev.QuizID)
}

// Submit appends the answer to the user's sequence with a server-assigned
// timestamp and broadcasts the submission. No-op if the session is unknown.
func (c *Coordinator) Submit(connID string, ev SubmitAnswer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.store.Get(ev.QuizID)
	if !ok {
		return
	}
	total := session.RecordAnswer(ev.UserID, domain.Answer{
		QuestionID:  ev.QuestionID,
		Value:       ev.Answer,
		TimeSpent:   ev.TimeSpent,
		SubmittedAt: c.now(),
	})

	c.broadcast(ev.QuizID, EventAnswerSubmitted, AnswerSubmitted{
		UserID:       ev.UserID,
		QuestionID:   ev.QuestionID,
		TotalAnswers: total,
	})
}

// SendLeaderboard computes the ranking and unicasts it to the requesting
// connection. No broadcast; other participants see nothing.
func (c *Coordinator) SendLeaderboard(connID string, ev GetLeaderboard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.store.Get(ev.QuizID)
	if !ok {
		return
	}
	c.sender.Send(connID, EventLeaderboardUpdate, Leaderboard(session))
}

// End marks the session ended and broadcasts the end time. The session stays
// in the store: late submissions and leaderboard reads still work, and a
// second end-quiz broadcasts again.
func (c *Coordinator) End(connID string, ev EndQuiz) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if session, ok := c.store.Get(ev.QuizID); ok {
		session.End(now)
	}
	c.broadcast(ev.QuizID, EventQuizEnded, QuizEnded{EndTime: now.UnixMilli()})
	log.Printf("quiz %s ended", ev.QuizID)
}

// Disconnect resolves the connection back to its session, removes the
// matching participant, and tells the remaining members. Safe for connections
// that never joined anything.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.registry.Lookup(connID)
	c.registry.Remove(connID)
	if !ok {
		return
	}

	session, ok := c.store.Get(info.SessionID)
	if !ok {
		return
	}
	removed, total := session.RemoveConnection(connID)
	if removed == 0 {
		return
	}
	c.broadcast(info.SessionID, EventUserLeft, UserLeft{
		UserName:          info.DisplayName,
		TotalParticipants: total,
	})
}

// broadcast fans an event out to every connection currently associated with
// the session. Callers must hold c.mu.
func (c *Coordinator) broadcast(sessionID, event string, payload any) {
	for _, connID := range c.registry.ConnectionsIn(sessionID) {
		c.sender.Send(connID, event, payload)
	}
}
