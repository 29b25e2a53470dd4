package domain

import "time"

// Role distinguishes the two kinds of session participants.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Participant is a student or teacher attached to a live session.
type Participant struct {
	UserID       string `json:"userId"`
	DisplayName  string `json:"userName"`
	Role         Role   `json:"userType"`
	ConnectionID string `json:"-"`
}

// Answer is one submitted response. The question identifier and answer value
// are opaque to the coordinator; they are stored and echoed back verbatim.
type Answer struct {
	QuestionID  any       `json:"questionId"`
	Value       any       `json:"answer"`
	TimeSpent   float64   `json:"timeSpent"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// LeaderboardEntry is a derived ranking row, recomputed on every request and
// never persisted.
type LeaderboardEntry struct {
	UserID       string `json:"userId"`
	DisplayName  string `json:"userName"`
	Score        int    `json:"score"`
	AnswersCount int    `json:"answersCount"`
}

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is a stored collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Topic     string     `json:"topic,omitempty"`
	Questions []Question `json:"questions"`
}

// GeneratedQuiz is the shape the AI authoring endpoint returns before the
// quiz is assigned an identifier and saved.
type GeneratedQuiz struct {
	Title     string              `json:"title"`
	Questions []GeneratedQuestion `json:"questions"`
}

// GeneratedQuestion is one AI-authored question. CorrectAnswer indexes into
// Options.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}
