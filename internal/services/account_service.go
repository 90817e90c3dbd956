package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/auth"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/cache"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/events"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// New tutors get these slots until they edit their profile.
var defaultAvailability = []string{
	"Monday 2-4 PM",
	"Wednesday 10 AM-12 PM",
	"Friday 3-5 PM",
}

type accountService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	cacheManager   *cache.CacheManager
	tokenManager   *auth.TokenManager
	eventPublisher events.EventPublisher
	bcryptCost     int
}

func NewAccountService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	tokenManager *auth.TokenManager,
	eventPublisher events.EventPublisher,
	bcryptCost int,
) AccountService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &accountService{
		repo:           repo,
		logger:         logger,
		validator:      v,
		cacheManager:   cacheManager,
		tokenManager:   tokenManager,
		eventPublisher: eventPublisher,
		bcryptCost:     bcryptCost,
	}
}

func (s *accountService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationFailure(errs)
	}

	email := normalizeEmail(req.Email)
	if err := s.checkEmailAvailable(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		Year:         req.Year,
		Major:        req.Major,
		Faculty:      req.Faculty,
		Bio:          req.Bio,
	}

	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Student registered", "user_id", user.ID, "faculty", user.Faculty)
	s.publishRegistered(ctx, user)

	return s.openSession(ctx, user)
}

func (s *accountService) RegisterTutor(ctx context.Context, req *RegisterTutorRequest) (*AuthResponse, error) {
	cgpa, errs := s.validator.ValidateTutorRegistration(req)
	if len(errs) > 0 {
		// A parseable CGPA outside the window is an eligibility failure,
		// not a malformed request.
		if len(errs) == 1 && errs[0].Rule == "tutor_cgpa" {
			return nil, fmt.Errorf("cgpa %.2f: %w", cgpa, ErrNotEligible)
		}
		return nil, NewValidationFailure(errs)
	}

	email := normalizeEmail(req.Email)
	if err := s.checkEmailAvailable(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	specializations := validator.SplitSpecializations(req.Specializations)
	specJSON, err := json.Marshal(specializations)
	if err != nil {
		return nil, fmt.Errorf("marshal specializations: %w", err)
	}
	availJSON, err := json.Marshal(defaultAvailability)
	if err != nil {
		return nil, fmt.Errorf("marshal availability: %w", err)
	}

	user := &models.User{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Email:           email,
		PasswordHash:    string(hash),
		Role:            models.RoleTutor,
		Year:            req.Year,
		Major:           req.Major,
		Faculty:         req.Faculty,
		Bio:             req.Bio,
		CGPA:            &cgpa,
		Specializations: datatypes.JSON(specJSON),
		Availability:    datatypes.JSON(availJSON),
	}

	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Tutor registered",
		"user_id", user.ID,
		"cgpa", cgpa,
		"specializations", len(specializations))
	s.publishRegistered(ctx, user)
	s.publishTutorListed(ctx, user)

	return s.openSession(ctx, user)
}

func (s *accountService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationFailure(errs)
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "role", user.Role)
	return s.openSession(ctx, user)
}

func (s *accountService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenManager.Parse(token)
	if err != nil {
		// Logout is unconditional: an invalid token means there is
		// nothing to revoke.
		return nil
	}

	if err := s.cacheManager.RevokeActiveSession(ctx, claims.TokenID); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke active session",
			"user_id", claims.UserID,
			"error", err)
	}

	s.logger.InfoContext(ctx, "User logged out", "user_id", claims.UserID)
	return nil
}

func (s *accountService) GetActiveUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// A missing active-session entry means the login was revoked. When
	// Redis is absent the JWT alone vouches for the session.
	userID, err := s.cacheManager.ActiveSessionUser(ctx, claims.TokenID)
	switch err {
	case nil:
		if userID != claims.UserID {
			return nil, ErrInvalidCredentials
		}
	case cache.ErrCacheNotFound:
		return nil, ErrInvalidCredentials
	case cache.ErrCacheNotAvailable:
		// fall through to the database lookup
	default:
		s.logger.WarnContext(ctx, "Active session lookup failed", "error", err)
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup active user: %w", err)
	}

	return user, nil
}

func (s *accountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ===== HELPERS =====

func (s *accountService) checkEmailAvailable(ctx context.Context, email string) error {
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrDuplicateEmail
	}
	return nil
}

func (s *accountService) createUser(ctx context.Context, user *models.User) error {
	if err := s.repo.User().Create(ctx, user); err != nil {
		// The unique index is the authority; the earlier existence check
		// only gives a friendlier fast path.
		if repositories.IsDuplicateError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *accountService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, tokenID, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.cacheManager.StoreActiveSession(ctx, tokenID, user.ID, s.tokenManager.TTL()); err != nil {
		s.logger.WarnContext(ctx, "Failed to store active session",
			"user_id", user.ID,
			"error", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *accountService) publishRegistered(ctx context.Context, user *models.User) {
	event := events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    string(user.Role),
		Faculty: user.Faculty,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish registration event",
			"user_id", user.ID,
			"error", err)
	}
}

// publishTutorListed announces the new directory entry.
func (s *accountService) publishTutorListed(ctx context.Context, user *models.User) {
	event := events.NewEvent(events.EventTutorListed, events.TutorListedEvent{
		TutorID: user.ID,
		Name:    user.Name,
		Faculty: user.Faculty,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish tutor listed event",
			"user_id", user.ID,
			"error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
