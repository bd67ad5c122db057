package dto

import (
	"encoding/json"
	"time"
)

// QuestionResponseDTO is used for displaying question details to users.
// It carries prompts and options only; answer-key material never appears here.
type QuestionResponseDTO struct {
	ID          uint            `json:"id"`
	TestID      uint            `json:"test_id"`
	Code        string          `json:"code"`
	Prompt      string          `json:"prompt"`
	Mechanic    string          `json:"mechanic"`
	Options     json.RawMessage `json:"options,omitempty"`
	OrderInTest int             `json:"order_in_test"`
}

// TestResponseDTO is used for displaying full test details to users.
type TestResponseDTO struct {
	ID          uint                  `json:"id"`
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Difficulty  int                   `json:"difficulty"`
	BasePoints  int                   `json:"base_points"`
	MaxAttempts *int                  `json:"max_attempts,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing tests available to users, including how
// many attempts the caller has already used.
type TestSummaryDTO struct {
	ID                uint      `json:"id"`
	Slug              string    `json:"slug"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Difficulty        int       `json:"difficulty"`
	BasePoints        int       `json:"base_points"`
	MaxAttempts       *int      `json:"max_attempts,omitempty"`
	QuestionCount     int       `json:"question_count"`
	AttemptsUsed      int       `json:"attempts_used"`
	AttemptsRemaining *int      `json:"attempts_remaining,omitempty"` // nil when unlimited
	CreatedAt         time.Time `json:"created_at"`
}
