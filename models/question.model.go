package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	gorm.Model
	Subject string                      `gorm:"not null" json:"subject"`
	Class   string                      `gorm:"not null" json:"class"`
	Text    string                      `gorm:"not null" json:"text"`
	Options datatypes.JSONSlice[string] `json:"options"`
	// CorrectAnswer must be one of Options; the author is responsible
	// for that, the server only checks presence.
	CorrectAnswer string `gorm:"not null" json:"correctAnswer"`
	ImageURL      string `gorm:"default:''" json:"imageUrl"`
	TestID        *uint  `gorm:"index" json:"testId,omitempty"`
	CreatedByID   uint   `json:"createdBy"`
}
