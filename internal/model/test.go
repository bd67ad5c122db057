package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `json:"slug" gorm:"not null;uniqueIndex"` // key-store identifier, e.g. "go-basics"
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Difficulty  int            `json:"difficulty" gorm:"not null;default:1"` // display tier 1-3
	BasePoints  int            `json:"base_points" gorm:"not null"`
	MaxAttempts *int           `json:"max_attempts,omitempty"` // nil means unlimited
	Active      bool           `json:"active" gorm:"default:true"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
