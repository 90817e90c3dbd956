package models

import (
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionConfirmed SessionStatus = "confirmed"
	SessionCompleted SessionStatus = "completed"
)

// Session is a tutoring booking (distinct from authentication state).
// Lifecycle: confirmed -> completed; completed sessions may be rated
// exactly once.
type Session struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	StudentID string `json:"student_id" gorm:"not null;index;size:64"`
	TutorID   string `json:"tutor_id" gorm:"not null;index;size:64"`
	TutorName string `json:"tutor_name" gorm:"not null;size:100"`
	Avatar    string `json:"avatar" gorm:"size:500"`

	Course   string        `json:"course" gorm:"not null;size:100"`
	Date     string        `json:"date" gorm:"not null;size:10"` // YYYY-MM-DD
	Time     string        `json:"time" gorm:"not null;size:10"` // e.g. "02:00 PM"
	Duration int           `json:"duration" gorm:"not null;default:60"`
	Type     SessionType   `json:"type" gorm:"not null;size:16"`
	Status   SessionStatus `json:"status" gorm:"not null;default:confirmed;index"`

	MeetingLink string `json:"meeting_link,omitempty" gorm:"size:255"`
	Location    string `json:"location,omitempty" gorm:"size:255"`
	Notes       string `json:"notes,omitempty" gorm:"type:text"`

	Rated    bool   `json:"rated" gorm:"not null;default:false"`
	Rating   *int   `json:"rating,omitempty"`
	Feedback string `json:"feedback,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Session) TableName() string {
	return "sessions"
}

// NeedsRating reports whether the session is completed but not yet rated.
func (s *Session) NeedsRating() bool {
	return s.Status == SessionCompleted && !s.Rated
}
