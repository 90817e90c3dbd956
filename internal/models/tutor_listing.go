package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionType string

const (
	SessionOnline   SessionType = "online"
	SessionInPerson SessionType = "in-person"
)

// TutorListing is the discovery-facing tutor representation shown in
// the directory. Seed listings are hard-shipped demo data; registered
// tutors are projected into this shape at query time and are never
// stored here (the two shapes are deliberately kept apart).
type TutorListing struct {
	ID           string         `json:"id" gorm:"primaryKey;size:64"`
	Name         string         `json:"name" gorm:"not null;size:100"`
	Avatar       string         `json:"avatar" gorm:"size:500"`
	Subjects     datatypes.JSON `json:"subjects"`
	Courses      datatypes.JSON `json:"courses"`
	Year         int            `json:"year" gorm:"index"`
	CGPA         float64        `json:"cgpa"`
	Faculty      string         `json:"faculty" gorm:"size:100;index"`
	Rating       float64        `json:"rating"`
	Reviews      int            `json:"reviews"`
	Bio          string         `json:"bio" gorm:"type:text"`
	Availability string         `json:"availability" gorm:"size:200"`
	SessionTypes datatypes.JSON `json:"session_types"`

	// Seed ordering: seed listings sort before dynamic tutors and keep
	// their shipped order.
	Seed      bool `json:"-" gorm:"not null;default:false;index"`
	SeedOrder int  `json:"-" gorm:"not null;default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (TutorListing) TableName() string {
	return "tutor_listings"
}
