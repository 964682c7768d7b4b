package models

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	gorm.Model
	Title        string `gorm:"not null" json:"title"`
	Subject      string `gorm:"not null" json:"subject"`
	Class        string `gorm:"not null" json:"class"`
	Instructions string `json:"instructions"`
	// Duration is the time limit in minutes.
	Duration  int  `json:"duration"`
	Randomize bool `json:"randomize"`
	// Availability window; EndAt must be after StartAt.
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	// Session is an academic term label, e.g. "2025/2026 Semester 1".
	Session       string     `json:"session"`
	QuestionCount int        `json:"questionCount"`
	Questions     []Question `gorm:"foreignKey:TestID" json:"questions"`
	CreatedByID   uint       `json:"createdBy"`
}

// AvailableAt reports whether the test can be taken at the given time.
func (t *Test) AvailableAt(now time.Time) bool {
	return !now.Before(t.StartAt) && !now.After(t.EndAt)
}
