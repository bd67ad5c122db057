package dto

import (
	"encoding/json"
	"time"
)

// TestAttemptSubmitDTO is the request body for submitting a full test. Answers
// map question codes to mechanic-shaped values; each value is kept raw here and
// shape-checked by the scoring evaluators, so malformed entries grade as
// incorrect instead of rejecting the whole submission.
type TestAttemptSubmitDTO struct {
	Answers map[string]json.RawMessage `json:"answers" binding:"required"`
}

// AnswerResponseDTO is one graded question within an attempt detail.
type AnswerResponseDTO struct {
	QuestionCode string          `json:"question_code"`
	Submitted    json.RawMessage `json:"submitted,omitempty"`
	Verdict      string          `json:"verdict"`
}

// TestAttemptDetailDTO is the full result of a single test attempt.
type TestAttemptDetailDTO struct {
	ID            uint                `json:"id"`
	TestID        uint                `json:"test_id"`
	TestTitle     string              `json:"test_title,omitempty"`
	Score         int                 `json:"score"`
	CorrectCount  int                 `json:"correct_count"`
	ScorableCount int                 `json:"scorable_count"`
	Unscoreable   bool                `json:"unscoreable"`
	SubmittedAt   time.Time           `json:"submitted_at"`
	Answers       []AnswerResponseDTO `json:"answers,omitempty"`
}

// TestAttemptSummaryDTO is for listing a user's attempts for a particular test.
type TestAttemptSummaryDTO struct {
	ID          uint      `json:"id"`
	TestID      uint      `json:"test_id"`
	Score       int       `json:"score"`
	Unscoreable bool      `json:"unscoreable"`
	SubmittedAt time.Time `json:"submitted_at"`
}
