package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the service.
const (
	EventUserRegistered = "user.registered"
	EventTutorListed    = "tutor.listed"
	EventSessionBooked  = "session.booked"
	EventSessionRated   = "session.rated"
)

// Event is the envelope every published message shares.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent wraps a payload in the standard envelope.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "tutorpal-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// UserRegisteredEvent is emitted after a student or tutor account is created.
type UserRegisteredEvent struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Faculty string `json:"faculty"`
}

// TutorListedEvent is emitted when a new tutor becomes visible in the
// directory.
type TutorListedEvent struct {
	TutorID string `json:"tutor_id"`
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
}

// SessionBookedEvent is emitted when a student books a tutoring session.
type SessionBookedEvent struct {
	SessionID string `json:"session_id"`
	StudentID string `json:"student_id"`
	TutorID   string `json:"tutor_id"`
	Course    string `json:"course"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

// SessionRatedEvent is emitted when a completed session receives a rating.
type SessionRatedEvent struct {
	SessionID string `json:"session_id"`
	StudentID string `json:"student_id"`
	TutorID   string `json:"tutor_id"`
	Rating    int    `json:"rating"`
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
