package model

import (
	"time"

	"gorm.io/gorm"
)

type TestAttempt struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Test          Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID        uint           `json:"user_id" gorm:"not null;index:idx_attempts_user_test"`
	Score         int            `json:"score" gorm:"not null"`
	CorrectCount  int            `json:"correct_count" gorm:"not null"`
	ScorableCount int            `json:"scorable_count" gorm:"not null"`
	Unscoreable   bool           `json:"unscoreable" gorm:"default:false"`
	SubmittedAt   time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	Answers       []Answer       `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
