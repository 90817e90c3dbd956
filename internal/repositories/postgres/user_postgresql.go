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

type UserPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a new account and invalidates caches that may embed it.
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if repositories.IsDuplicateError(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, repositories.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if user.IsTutor() {
		cache.SafeInvalidatePattern(ctx, u.cacheManager.Listing, "*")
	}
	cache.SafeDelete(ctx, u.cacheManager.Exists, fmt.Sprintf("email:%s", user.Email))

	return nil
}

// Update persists profile changes and invalidates stale entries.
func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	cache.InvalidateTutorCache(ctx, u.cacheManager, user.ID, user.Email)
	return nil
}

// UpdateRating sets the aggregate rating after a new review lands.
func (u *UserPostgreSQL) UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}

	cache.SafeDelete(ctx, u.cacheManager.User, fmt.Sprintf("id:%s", id))
	cache.SafeInvalidatePattern(ctx, u.cacheManager.Listing, "*")

	return nil
}

// IncrementSessionsCompleted bumps the completed-session counter.
func (u *UserPostgreSQL) IncrementSessionsCompleted(ctx context.Context, id string) error {
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("sessions_completed", gorm.Expr("sessions_completed + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment sessions completed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}

	cache.SafeDelete(ctx, u.cacheManager.User, fmt.Sprintf("id:%s", id))
	return nil
}

// GetByID retrieves a user by ID with caching
func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. Login depends on this path, so
// it goes straight to the database rather than risking a stale hash.
func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with filters and pagination
func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})
	query = u.helpers.ApplyUserFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = u.helpers.ApplyPaginationAndSort(query, "created_at", "asc", filters.Limit, filters.Offset)

	var users []*models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// ListTutors returns all tutor accounts in registration order.
func (u *UserPostgreSQL) ListTutors(ctx context.Context) ([]*models.User, error) {
	var tutors []*models.User
	err := u.db.WithContext(ctx).
		Where("role = ?", models.RoleTutor).
		Order("created_at ASC").
		Find(&tutors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}
	return tutors, nil
}

// ExistsByID checks if a user exists
func (u *UserPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// ExistsByEmail checks if an email is already registered
func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// HasRole checks whether the user holds the given role
func (u *UserPostgreSQL) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user role: %w", err)
	}
	return count > 0, nil
}
