package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
)

// Tutor eligibility bounds on the 5.0 CGPA scale.
const (
	TutorMinCGPA = 4.5
	TutorMaxCGPA = 5.0
)

// User is a registered account. Students and tutors share one table;
// Role selects the variant and the tutor-only columns are null for
// students.
type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:64"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;index;size:16"`

	Year    int     `json:"year" gorm:"not null"`
	Major   string  `json:"major" gorm:"not null;size:100"`
	Faculty string  `json:"faculty" gorm:"not null;size:100"`
	Bio     string  `json:"bio" gorm:"type:text"`
	Avatar  *string `json:"avatar" gorm:"size:500"`
	Rating  float64 `json:"rating" gorm:"default:0"`

	// Tutor-only fields
	CGPA              *float64       `json:"cgpa,omitempty"`
	Specializations   datatypes.JSON `json:"specializations,omitempty"`
	TotalReviews      int            `json:"total_reviews"`
	SessionsCompleted int            `json:"sessions_completed"`
	Availability      datatypes.JSON `json:"availability,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsTutor reports whether the account carries the tutor variant.
func (u *User) IsTutor() bool {
	return u.Role == RoleTutor
}
