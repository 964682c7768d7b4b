package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Assignment is a (subject, class) pair a teacher may act on or a
// student is enrolled in. Classes are referenced by name, not by id.
type Assignment struct {
	Subject string `json:"subject"`
	Class   string `json:"class"`
}

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"default:''" json:"name"`
	Surname  string `gorm:"default:''" json:"surname"`
	// Role is fixed at creation and never changed by profile updates.
	Role  string `gorm:"default:'student'" json:"role"`
	Class string `gorm:"default:''" json:"class"`
	// Subjects holds teacher assignments, EnrolledSubjects student
	// enrollments. Only one of the two is populated per role.
	Subjects         datatypes.JSONSlice[Assignment] `json:"subjects"`
	EnrolledSubjects datatypes.JSONSlice[Assignment] `json:"enrolledSubjects"`
	Blocked          bool                            `gorm:"default:false" json:"blocked"`
}

// ContainsAssignment reports whether the pair (subject, class) appears in list.
func ContainsAssignment(list []Assignment, subject, class string) bool {
	for _, a := range list {
		if a.Subject == subject && a.Class == class {
			return true
		}
	}
	return false
}
