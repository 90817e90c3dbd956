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

type SessionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewSessionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.SessionRepository {
	return &SessionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a booking and invalidates the student's session lists.
func (s *SessionPostgreSQL) Create(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	cache.InvalidateSessionCache(ctx, s.cacheManager, session.ID, session.StudentID)
	return nil
}

// GetByID retrieves a session by ID
func (s *SessionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// List retrieves sessions with filters and pagination
func (s *SessionPostgreSQL) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.Session, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Session{})
	query = s.helpers.ApplySessionFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var sessions []*models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, total, nil
}

// ListByStudent returns a student's sessions in one status, cached per
// student and status.
func (s *SessionPostgreSQL) ListByStudent(ctx context.Context, studentID string, status models.SessionStatus) ([]*models.Session, error) {
	cacheKey := fmt.Sprintf("student:%s:%s", studentID, status)
	var sessions []*models.Session

	err := s.cacheManager.Session.CacheOrExecute(ctx, cacheKey, &sessions, cache.SessionCacheConfig.TTL, func() (interface{}, error) {
		var dbSessions []*models.Session
		err := s.db.WithContext(ctx).
			Where("student_id = ? AND status = ?", studentID, status).
			Order("date ASC, time ASC").
			Find(&dbSessions).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list student sessions: %w", err)
		}
		return dbSessions, nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateStatus moves a session through its lifecycle.
func (s *SessionPostgreSQL) UpdateStatus(ctx context.Context, id string, status models.SessionStatus) error {
	var session models.Session
	if err := s.db.WithContext(ctx).Select("id, student_id").First(&session, "id = ?", id).Error; err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update session status: %w", result.Error)
	}

	cache.InvalidateSessionCache(ctx, s.cacheManager, id, session.StudentID)
	return nil
}

// SetRating stores the rating and flips the rated flag in one update.
// Rows are matched on rated = false so a second rating never lands.
func (s *SessionPostgreSQL) SetRating(ctx context.Context, id string, rating int, feedback string) error {
	var session models.Session
	if err := s.db.WithContext(ctx).Select("id, student_id, rated").First(&session, "id = ?", id).Error; err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND rated = ?", id, false).
		Updates(map[string]interface{}{
			"rated":    true,
			"rating":   rating,
			"feedback": feedback,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set session rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}

	cache.InvalidateSessionCache(ctx, s.cacheManager, id, session.StudentID)
	return nil
}

// Stats aggregates booking numbers for reporting.
func (s *SessionPostgreSQL) Stats(ctx context.Context) (*repositories.SessionStats, error) {
	stats := &repositories.SessionStats{}

	var total, completed, rated int64
	if err := s.db.WithContext(ctx).Model(&models.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("status = ?", models.SessionCompleted).Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed sessions: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("rated = ?", true).Count(&rated).Error; err != nil {
		return nil, fmt.Errorf("failed to count rated sessions: %w", err)
	}

	var avgRating *float64
	if err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("rated = ?", true).
		Select("AVG(rating)").
		Scan(&avgRating).Error; err != nil {
		return nil, fmt.Errorf("failed to average session ratings: %w", err)
	}

	stats.TotalSessions = int(total)
	stats.CompletedSessions = int(completed)
	stats.RatedSessions = int(rated)
	if avgRating != nil {
		stats.AverageRating = *avgRating
	}

	return stats, nil
}
