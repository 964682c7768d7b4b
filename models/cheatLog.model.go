package models

import (
	"time"

	"gorm.io/gorm"
)

// CheatLog is one client-reported violation (tab switch, window blur).
// Rows are append-only; there is no update path.
type CheatLog struct {
	gorm.Model
	TestID    uint      `gorm:"index" json:"testId"`
	UserID    uint      `gorm:"index" json:"userId"`
	Type      string    `gorm:"not null" json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
