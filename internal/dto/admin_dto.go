package dto

import "encoding/json"

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
// Only public content is accepted here: the grading key for a question lives in
// the versioned answer-key data file, keyed by the test slug and question code.
type QuestionCreateDTO struct {
	Code        string          `json:"code" binding:"required"`
	Prompt      string          `json:"prompt" binding:"required"`
	Mechanic    string          `json:"mechanic" binding:"required,oneof=single multi ordering matching true_false_reason cloze"`
	Options     json.RawMessage `json:"options"`
	OrderInTest int             `json:"order_in_test" binding:"required,min=1"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Slug        string              `json:"slug" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Difficulty  int                 `json:"difficulty" binding:"required,min=1,max=3"`
	BasePoints  int                 `json:"base_points" binding:"required,gt=0"`
	MaxAttempts *int                `json:"max_attempts" binding:"omitempty,gt=0"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestActiveUpdateDTO toggles whether a test is open for attempts.
type TestActiveUpdateDTO struct {
	Active *bool `json:"active" binding:"required"`
}
