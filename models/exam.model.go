package models

import (
	"time"

	"gorm.io/gorm"
)

// Exam is the scheduling record for an examination sitting. Tests are
// the question papers; an exam scopes them to a session and date.
type Exam struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Subject     string    `gorm:"not null" json:"subject"`
	Class       string    `gorm:"not null" json:"class"`
	Session     string    `json:"session"`
	Date        time.Time `json:"date"`
	CreatedByID uint      `json:"createdBy"`
}
