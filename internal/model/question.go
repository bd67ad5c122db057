package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID     uint `gorm:"primarykey" json:"id"`
	TestID uint `json:"test_id" gorm:"not null;index"`
	// Code is the stable question identifier shared with the answer-key data
	// file and with submissions, e.g. "q1".
	Code        string         `json:"code" gorm:"not null;index"`
	Prompt      string         `json:"prompt" gorm:"type:text;not null"`
	Mechanic    string         `json:"mechanic" gorm:"not null"` // single, multi, ordering, matching, true_false_reason, cloze
	Options     string         `json:"options" gorm:"type:text"` // mechanic-shaped option/prompt data, stored as JSON
	OrderInTest int            `json:"order_in_test" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
