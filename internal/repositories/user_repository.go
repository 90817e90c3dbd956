package repositories

import (
	"context"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// UserRepository interface for account storage
type UserRepository interface {
	// Write operations
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error
	IncrementSessionsCompleted(ctx context.Context, id string) error

	// Basic read operations
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List and search operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ListTutors(ctx context.Context) ([]*models.User, error)

	// Validation and checks
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}
