package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"classquiz/internal/domain"
	"github.com/google/uuid"
)

// QuizRepository loads quiz content (through cache and backing store) and
// drops cached entries when the stored quiz goes away.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	Invalidate(ctx context.Context, quizID string)
}

// QuizWriter persists authored quizzes. Optional; generation still works
// without it, the quiz is just not stored and delete returns 404.
type QuizWriter interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
	DeleteQuiz(ctx context.Context, quizID string) error
}

// Generator is the AI authoring boundary.
type Generator interface {
	Enabled() bool
	GenerateQuiz(ctx context.Context, topic, difficulty string, questionCount int) (domain.GeneratedQuiz, error)
	ExplainAnswer(ctx context.Context, question, correctAnswer string) (string, error)
}

// RESTHandler exposes the thin REST surface around the live coordinator:
// health, quiz reads, and AI quiz authoring.
type RESTHandler struct {
	quizzes   QuizRepository
	store     QuizWriter
	generator Generator
}

func NewRESTHandler(quizzes QuizRepository, store QuizWriter, generator Generator) *RESTHandler {
	return &RESTHandler{quizzes: quizzes, store: store, generator: generator}
}

// Register mounts the REST routes on mux.
func (h *RESTHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/quiz/{id}", h.handleGetQuiz)
	mux.HandleFunc("DELETE /api/quiz/{id}", h.handleDeleteQuiz)
	mux.HandleFunc("POST /api/quiz/generate", h.handleGenerateQuiz)
	mux.HandleFunc("POST /api/quiz/explain", h.handleExplain)
}

func (h *RESTHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *RESTHandler) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), r.PathValue("id"))
	if errors.Is(err, domain.ErrQuizNotFound) {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		log.Printf("get quiz: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load quiz")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *RESTHandler) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "quiz store is not configured")
		return
	}
	quizID := r.PathValue("id")
	if err := h.store.DeleteQuiz(r.Context(), quizID); err != nil {
		log.Printf("delete quiz: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete quiz")
		return
	}
	h.quizzes.Invalidate(r.Context(), quizID)
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

func (h *RESTHandler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = 5
	}
	if !h.generator.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}

	generated, err := h.generator.GenerateQuiz(r.Context(), req.Topic, req.Difficulty, req.QuestionCount)
	if err != nil {
		log.Printf("generate quiz: %v", err)
		writeError(w, http.StatusBadGateway, "quiz generation failed")
		return
	}

	quiz := assembleQuiz(req.Topic, generated)
	if h.store != nil {
		if err := h.store.SaveQuiz(r.Context(), quiz); err != nil {
			log.Printf("save generated quiz: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to save quiz")
			return
		}
	}
	writeJSON(w, http.StatusCreated, quiz)
}

type explainRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
}

func (h *RESTHandler) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if !h.generator.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "explanations are not configured")
		return
	}

	explanation, err := h.generator.ExplainAnswer(r.Context(), req.Question, req.CorrectAnswer)
	if err != nil {
		log.Printf("explain answer: %v", err)
		writeError(w, http.StatusBadGateway, "explanation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

// assembleQuiz turns a generated quiz into a stored one, minting option and
// question identifiers.
func assembleQuiz(topic string, g domain.GeneratedQuiz) domain.Quiz {
	quiz := domain.Quiz{
		ID:    uuid.NewString(),
		Title: g.Title,
		Topic: topic,
	}
	for _, q := range g.Questions {
		question := domain.Question{
			ID:          uuid.NewString(),
			Prompt:      q.Question,
			Explanation: q.Explanation,
		}
		for j, text := range q.Options {
			question.Options = append(question.Options, domain.Option{
				ID:      uuid.NewString(),
				Text:    text,
				Correct: j == q.CorrectAnswer,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
