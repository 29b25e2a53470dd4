package live

import (
	"encoding/json"

	"classquiz/internal/domain"
)

// Client-to-server event names.
const (
	EventJoinQuiz       = "join-quiz"
	EventStartQuiz      = "start-quiz"
	EventSubmitAnswer   = "submit-answer"
	EventGetLeaderboard = "get-leaderboard"
	EventEndQuiz        = "end-quiz"
)

// Server-to-client event names.
const (
	EventUserJoined        = "user-joined"
	EventQuizStarted       = "quiz-started"
	EventAnswerSubmitted   = "answer-submitted"
	EventLeaderboardUpdate = "leaderboard-update"
	EventQuizEnded         = "quiz-ended"
	EventUserLeft          = "user-left"
)

// JoinQuiz is the inbound join event.
type JoinQuiz struct {
	QuizID   string      `json:"quizId"`
	UserID   string      `json:"userId"`
	UserName string      `json:"userName"`
	UserType domain.Role `json:"userType"`
}

// StartQuiz carries the question set to broadcast; the coordinator never
// inspects it.
type StartQuiz struct {
	QuizID    string          `json:"quizId"`
	Questions json.RawMessage `json:"questions"`
}

// SubmitAnswer is the inbound answer event. QuestionID and Answer are opaque.
type SubmitAnswer struct {
	QuizID     string  `json:"quizId"`
	UserID     string  `json:"userId"`
	QuestionID any     `json:"questionId"`
	Answer     any     `json:"answer"`
	TimeSpent  float64 `json:"timeSpent"`
}

// GetLeaderboard requests the current ranking; the reply is unicast to the
// requesting connection only.
type GetLeaderboard struct {
	QuizID string `json:"quizId"`
}

// EndQuiz signals the end of a live run.
type EndQuiz struct {
	QuizID string `json:"quizId"`
}

// UserJoined is broadcast to every connection in the session after a join.
type UserJoined struct {
	UserID            string      `json:"userId"`
	UserName          string      `json:"userName"`
	UserType          domain.Role `json:"userType"`
	TotalParticipants int         `json:"totalParticipants"`
}

// QuizStarted is broadcast when the quiz starts. StartTime is Unix
// milliseconds.
type QuizStarted struct {
	StartTime int64           `json:"startTime"`
	Questions json.RawMessage `json:"questions"`
}

// AnswerSubmitted is broadcast after each recorded answer.
type AnswerSubmitted struct {
	UserID       string `json:"userId"`
	QuestionID   any    `json:"questionId"`
	TotalAnswers int    `json:"totalAnswers"`
}

// QuizEnded is broadcast on end. EndTime is Unix milliseconds.
type QuizEnded struct {
	EndTime int64 `json:"endTime"`
}

// UserLeft is broadcast to the remaining session members after a disconnect.
type UserLeft struct {
	UserName          string `json:"userName"`
	TotalParticipants int    `json:"totalParticipants"`
}
