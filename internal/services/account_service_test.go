package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/auth"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/cache"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/events"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newAccountServiceForTest(t *testing.T, cacheManager *cache.CacheManager) (AccountService, *mockRepository, *events.MockEventPublisher) {
	t.Helper()

	logger := testLogger()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	tokenManager := auth.NewTokenManager("test-secret", "tutorpal-service", time.Hour)
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}

	service := NewAccountService(repo, logger, validator.New(), cacheManager, tokenManager, publisher, bcrypt.MinCost)
	return service, repo, publisher
}

func studentRequest() *RegisterStudentRequest {
	return &RegisterStudentRequest{
		Name:     "Amara Okafor",
		Email:    "Amara@ucu.ac.ug",
		Password: "password",
		Year:     3,
		Major:    "Software Engineering",
		Faculty:  "Engineering & Technology",
	}
}

func tutorRequest() *RegisterTutorRequest {
	return &RegisterTutorRequest{
		Name:            "Chinwe Adebayo",
		Email:           "chinwe@ucu.ac.ug",
		Password:        "password",
		CGPA:            "4.85",
		Year:            4,
		Major:           "Computer Science",
		Faculty:         "Engineering & Technology",
		Specializations: "Data Structures, Algorithms, Database Systems",
	}
}

func TestAccountService_RegisterStudent(t *testing.T) {
	service, repo, publisher := newAccountServiceForTest(t, nil)
	ctx := context.Background()

	resp, err := service.RegisterStudent(ctx, studentRequest())
	if err != nil {
		t.Fatalf("Failed to register student: %v", err)
	}

	if resp.Token == "" {
		t.Error("Expected a session token")
	}
	if resp.User.Email != "amara@ucu.ac.ug" {
		t.Errorf("Expected normalized email, got %s", resp.User.Email)
	}
	if resp.User.PasswordHash == "password" {
		t.Error("Password must not be stored in plain text")
	}

	stored, err := repo.User().GetByEmail(ctx, "amara@ucu.ac.ug")
	if err != nil {
		t.Fatalf("Registered user not persisted: %v", err)
	}
	if stored.IsTutor() {
		t.Error("Student must not carry the tutor role")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(published))
	}
	if published[0].Type != events.EventUserRegistered {
		t.Errorf("Expected %s event, got %s", events.EventUserRegistered, published[0].Type)
	}
}

func TestAccountService_RegisterStudent_DuplicateEmail(t *testing.T) {
	service, _, _ := newAccountServiceForTest(t, nil)
	ctx := context.Background()

	if _, err := service.RegisterStudent(ctx, studentRequest()); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	_, err := service.RegisterStudent(ctx, studentRequest())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountService_RegisterTutor(t *testing.T) {
	service, _, _ := newAccountServiceForTest(t, nil)
	ctx := context.Background()

	t.Run("eligible CGPA", func(t *testing.T) {
		resp, err := service.RegisterTutor(ctx, tutorRequest())
		if err != nil {
			t.Fatalf("Failed to register tutor: %v", err)
		}
		if !resp.User.IsTutor() {
			t.Error("Expected tutor role")
		}
		if resp.User.CGPA == nil || *resp.User.CGPA != 4.85 {
			t.Errorf("Expected CGPA 4.85, got %v", resp.User.CGPA)
		}
		if len(resp.User.Availability) == 0 {
			t.Error("Expected default availability to be set")
		}
	})

	t.Run("CGPA below threshold", func(t *testing.T) {
		req := tutorRequest()
		req.Email = "low@ucu.ac.ug"
		req.CGPA = "4.2"

		_, err := service.RegisterTutor(ctx, req)
		if !errors.Is(err, ErrNotEligible) {
			t.Fatalf("Expected ErrNotEligible, got %v", err)
		}
	})

	t.Run("unparseable CGPA is a validation failure", func(t *testing.T) {
		req := tutorRequest()
		req.Email = "bad@ucu.ac.ug"
		req.CGPA = "excellent"

		_, err := service.RegisterTutor(ctx, req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("Expected ErrValidationFailed, got %v", err)
		}
		if errors.Is(err, ErrNotEligible) {
			t.Error("Unparseable CGPA must not map to the eligibility error")
		}
	})
}

func TestAccountService_Login(t *testing.T) {
	service, _, _ := newAccountServiceForTest(t, nil)
	ctx := context.Background()

	if _, err := service.RegisterStudent(ctx, studentRequest()); err != nil {
		t.Fatalf("Failed to register student: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginRequest{Email: "amara@ucu.ac.ug", Password: "password"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("Expected a session token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "amara@ucu.ac.ug", Password: "wrong-password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "nobody@ucu.ac.ug", Password: "password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAccountService_GetActiveUser_WithoutRedis(t *testing.T) {
	service, _, _ := newAccountServiceForTest(t, nil)
	ctx := context.Background()

	resp, err := service.RegisterStudent(ctx, studentRequest())
	if err != nil {
		t.Fatalf("Failed to register student: %v", err)
	}

	// Without Redis the JWT alone vouches for the session.
	user, err := service.GetActiveUser(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Failed to resolve active user: %v", err)
	}
	if user.ID != resp.User.ID {
		t.Errorf("Expected user %s, got %s", resp.User.ID, user.ID)
	}

	if _, err := service.GetActiveUser(ctx, "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for garbage token, got %v", err)
	}
}

func TestAccountService_LogoutRevokesSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	service, _, _ := newAccountServiceForTest(t, cache.NewCacheManager(client))
	ctx := context.Background()

	resp, err := service.RegisterStudent(ctx, studentRequest())
	if err != nil {
		t.Fatalf("Failed to register student: %v", err)
	}

	if _, err := service.GetActiveUser(ctx, resp.Token); err != nil {
		t.Fatalf("Session should be active after registration: %v", err)
	}

	if err := service.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := service.GetActiveUser(ctx, resp.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected revoked session to be rejected, got %v", err)
	}

	// Logout is unconditional even for garbage tokens.
	if err := service.Logout(ctx, "not-a-token"); err != nil {
		t.Fatalf("Logout with invalid token should be a no-op, got %v", err)
	}
}
