package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one graded question within a test attempt. Submitted keeps the raw
// value for audit; the verdict is what the scoring engine decided.
type Answer struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestAttemptID uint           `json:"test_attempt_id" gorm:"not null;index"`
	QuestionCode  string         `json:"question_code" gorm:"not null"`
	Submitted     string         `json:"submitted" gorm:"type:text"`
	Verdict       string         `json:"verdict" gorm:"not null"` // correct, incorrect, excluded
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
