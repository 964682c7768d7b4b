package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Result struct {
	gorm.Model
	TestID uint `gorm:"index" json:"testId"`
	UserID uint `gorm:"index" json:"userId"`
	// Subject, Class and Session are copied from the test at submission
	// time so later edits to the test do not rewrite history.
	Subject string `json:"subject"`
	Class   string `json:"class"`
	Session string `json:"session"`
	// Answers maps question id (as a string key) to the selected option.
	Answers        datatypes.JSONType[map[string]string] `json:"answers"`
	Score          int                                   `json:"score"`
	TotalQuestions int                                   `json:"totalQuestions"`
	SubmittedAt    time.Time                             `json:"submittedAt"`
}
