package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Class struct {
	gorm.Model
	Name     string                      `gorm:"unique;not null" json:"name"`
	Subjects datatypes.JSONSlice[string] `json:"subjects"`
}

// HasSubject reports whether the class already offers the subject.
func (c *Class) HasSubject(subject string) bool {
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
