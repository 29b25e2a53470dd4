package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSessionEnded is returned when a state transition is attempted on a
	// session that already ended.
	ErrSessionEnded = errors.New("quiz session already ended")
	// ErrGenerationDisabled is returned when AI authoring is requested but no
	// API key is configured.
	ErrGenerationDisabled = errors.New("quiz generation is not configured")
)
