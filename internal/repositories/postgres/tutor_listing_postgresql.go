package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/cache"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

type TutorListingPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTutorListingPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.TutorListingRepository {
	return &TutorListingPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a listing and invalidates the directory cache.
func (t *TutorListingPostgreSQL) Create(ctx context.Context, listing *models.TutorListing) error {
	if err := t.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create tutor listing: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, t.cacheManager.Listing, "*")
	return nil
}

// BulkCreate inserts listings in a single statement, preserving slice order.
func (t *TutorListingPostgreSQL) BulkCreate(ctx context.Context, listings []*models.TutorListing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := t.db.WithContext(ctx).Create(&listings).Error; err != nil {
		return fmt.Errorf("failed to bulk create tutor listings: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, t.cacheManager.Listing, "*")
	return nil
}

// GetByID retrieves a listing by ID with caching
func (t *TutorListingPostgreSQL) GetByID(ctx context.Context, id string) (*models.TutorListing, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var listing models.TutorListing

	err := t.cacheManager.Listing.CacheOrExecute(ctx, cacheKey, &listing, cache.ListingCacheConfig.TTL, func() (interface{}, error) {
		var dbListing models.TutorListing
		if err := t.db.WithContext(ctx).First(&dbListing, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &dbListing, nil
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

// ListSeeded returns the curated listings in their fixed display order.
func (t *TutorListingPostgreSQL) ListSeeded(ctx context.Context) ([]*models.TutorListing, error) {
	cacheKey := "seeded:all"
	var listings []*models.TutorListing

	err := t.cacheManager.Listing.CacheOrExecute(ctx, cacheKey, &listings, cache.ListingCacheConfig.TTL, func() (interface{}, error) {
		var dbListings []*models.TutorListing
		err := t.db.WithContext(ctx).
			Where("seed = ?", true).
			Order("seed_order ASC").
			Find(&dbListings).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list seeded tutors: %w", err)
		}
		return dbListings, nil
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// CountSeeded counts curated listings, used for idempotent seeding.
func (t *TutorListingPostgreSQL) CountSeeded(ctx context.Context) (int64, error) {
	var count int64
	err := t.db.WithContext(ctx).
		Model(&models.TutorListing{}).
		Where("seed = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count seeded listings: %w", err)
	}
	return count, nil
}

// Stats aggregates directory numbers for reporting.
func (t *TutorListingPostgreSQL) Stats(ctx context.Context) (*repositories.DirectoryStats, error) {
	stats := &repositories.DirectoryStats{}

	var total, seeded, tutors int64
	if err := t.db.WithContext(ctx).Model(&models.TutorListing{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if err := t.db.WithContext(ctx).Model(&models.TutorListing{}).Where("seed = ?", true).Count(&seeded).Error; err != nil {
		return nil, fmt.Errorf("failed to count seeded listings: %w", err)
	}
	if err := t.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleTutor).Count(&tutors).Error; err != nil {
		return nil, fmt.Errorf("failed to count tutor accounts: %w", err)
	}

	var avgRating *float64
	if err := t.db.WithContext(ctx).
		Model(&models.TutorListing{}).
		Select("AVG(rating)").
		Scan(&avgRating).Error; err != nil {
		return nil, fmt.Errorf("failed to average listing ratings: %w", err)
	}

	stats.TotalListings = int(total)
	stats.SeedListings = int(seeded)
	stats.TutorAccounts = int(tutors)
	if avgRating != nil {
		stats.AverageRating = *avgRating
	}

	return stats, nil
}
