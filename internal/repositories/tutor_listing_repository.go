package repositories

import (
	"context"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// TutorListingRepository stores the curated directory entries. Seeded
// listings keep their insertion order and always sort before listings
// projected from tutor accounts.
type TutorListingRepository interface {
	Create(ctx context.Context, listing *models.TutorListing) error
	BulkCreate(ctx context.Context, listings []*models.TutorListing) error

	GetByID(ctx context.Context, id string) (*models.TutorListing, error)
	ListSeeded(ctx context.Context) ([]*models.TutorListing, error)

	CountSeeded(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*DirectoryStats, error)
}
