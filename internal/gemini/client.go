package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"classquiz/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"
)

// Config holds the settings for the text-generation endpoint.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client calls the Gemini generateContent endpoint for quiz authoring and
// answer explanations. The coordinator never touches this; it serves the REST
// boundary only.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// GenerateQuiz asks the model for an MCQ quiz on the given topic and parses
// the JSON object out of the reply.
func (c *Client) GenerateQuiz(ctx context.Context, topic, difficulty string, questionCount int) (domain.GeneratedQuiz, error) {
	prompt := fmt.Sprintf(`Generate a quiz about %q with the following specifications:
- Difficulty: %s
- Number of questions: %d
- Each question should have 4 multiple choice options
- Only one correct answer per question
- Include a mix of conceptual and practical questions
- Provide a clear explanation for why the correct answer is correct

Format the response as a JSON object with this structure:
{
  "title": "Quiz title",
  "questions": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Why this answer is correct and the others are not"
    }
  ]
}

Make sure the JSON is valid and properly formatted.`, topic, difficulty, questionCount)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return domain.GeneratedQuiz{}, fmt.Errorf("gemini reply: %w", err)
	}
	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return domain.GeneratedQuiz{}, fmt.Errorf("gemini reply: unmarshal quiz: %w", err)
	}
	return quiz, nil
}

// ExplainAnswer asks the model for a short explanation of why the given
// answer is correct.
func (c *Client) ExplainAnswer(ctx context.Context, question, correctAnswer string) (string, error) {
	prompt := fmt.Sprintf(
		"Explain in 2-3 sentences, for a student, why %q is the correct answer to the question %q.",
		correctAnswer, question,
	)
	return c.generate(ctx, prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate posts the prompt to generateContent and returns the first
// candidate's text, retrying rate limits and server errors with backoff.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", domain.ErrGenerationDisabled
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("gemini: status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}

		var parsed generateResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return "", fmt.Errorf("gemini: unmarshal response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini: %s", parsed.Error.Message)
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("gemini: empty response")
		}
		return parsed.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("gemini: retries exhausted: %w", lastErr)
}

// extractJSON pulls the first top-level JSON object out of a model reply,
// tolerating markdown fences and prose around it.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found")
	}
	return text[start : end+1], nil
}
