package repositories

import (
	"context"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// SessionRepository stores tutoring bookings.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)

	List(ctx context.Context, filters SessionFilters) ([]*models.Session, int64, error)
	ListByStudent(ctx context.Context, studentID string, status models.SessionStatus) ([]*models.Session, error)

	UpdateStatus(ctx context.Context, id string, status models.SessionStatus) error
	SetRating(ctx context.Context, id string, rating int, feedback string) error

	Stats(ctx context.Context) (*SessionStats, error)
}
