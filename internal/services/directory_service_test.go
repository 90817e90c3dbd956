package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

func seedDirectory(t *testing.T, repo *mockRepository) {
	t.Helper()
	ctx := context.Background()

	listings := []*models.TutorListing{
		{
			ID:           "listing-1",
			Name:         "Chinwe Adebayo",
			Subjects:     jsonList("Data Structures", "Algorithms"),
			Courses:      jsonList("ENG201", "ENG301"),
			Year:         4,
			CGPA:         4.85,
			Faculty:      "Engineering & Technology",
			Rating:       4.9,
			Reviews:      47,
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    1,
		},
		{
			ID:           "listing-2",
			Name:         "Kwame Mensah",
			Subjects:     jsonList("Financial Accounting"),
			Courses:      jsonList("BUS101", "BUS205"),
			Year:         3,
			CGPA:         4.75,
			Faculty:      "Business Administration",
			Rating:       4.7,
			Reviews:      32,
			SessionTypes: jsonList("online"),
			Seed:         true,
			SeedOrder:    2,
		},
	}
	if err := repo.TutorListing().BulkCreate(ctx, listings); err != nil {
		t.Fatalf("Failed to seed listings: %v", err)
	}

	cgpa := 4.6
	tutor := &models.User{
		ID:              "tutor-1",
		Name:            "Zara Nkosi",
		Email:           "zara@ucu.ac.ug",
		PasswordHash:    "x",
		Role:            models.RoleTutor,
		Year:            2,
		Faculty:         "Engineering & Technology",
		CGPA:            &cgpa,
		Specializations: jsonList("Thermodynamics", "MECH301"),
	}
	if err := repo.User().Create(ctx, tutor); err != nil {
		t.Fatalf("Failed to seed tutor: %v", err)
	}
}

func TestDirectoryService_Search(t *testing.T) {
	repo := newMockRepository()
	seedDirectory(t, repo)
	service := NewDirectoryService(repo, testLogger())
	ctx := context.Background()

	t.Run("empty query returns full directory in order", func(t *testing.T) {
		result, err := service.Search(ctx, "", FilterAll, FilterAll)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 3 {
			t.Fatalf("Expected 3 entries, got %d", result.Total)
		}

		// Seeded listings first in seed order, then registered tutors.
		wantOrder := []string{"listing-1", "listing-2", "tutor-1"}
		for i, want := range wantOrder {
			if result.Tutors[i].ID != want {
				t.Errorf("Position %d: expected %s, got %s", i, want, result.Tutors[i].ID)
			}
		}
	})

	t.Run("query matches course code", func(t *testing.T) {
		result, err := service.Search(ctx, "eng201", FilterAll, FilterAll)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 1 || result.Tutors[0].ID != "listing-1" {
			t.Fatalf("Expected listing-1 only, got %+v", result.Tutors)
		}
	})

	t.Run("query matches registered tutor specialization", func(t *testing.T) {
		result, err := service.Search(ctx, "thermo", FilterAll, FilterAll)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 1 || result.Tutors[0].ID != "tutor-1" {
			t.Fatalf("Expected tutor-1 only, got %+v", result.Tutors)
		}
	})

	t.Run("year filter", func(t *testing.T) {
		result, err := service.Search(ctx, "", "3", FilterAll)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 1 || result.Tutors[0].ID != "listing-2" {
			t.Fatalf("Expected listing-2 only, got %+v", result.Tutors)
		}
	})

	t.Run("faculty filter preserves order", func(t *testing.T) {
		result, err := service.Search(ctx, "", FilterAll, "engineering")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 2 {
			t.Fatalf("Expected 2 entries, got %d", result.Total)
		}
		if result.Tutors[0].ID != "listing-1" || result.Tutors[1].ID != "tutor-1" {
			t.Fatalf("Unexpected order: %s, %s", result.Tutors[0].ID, result.Tutors[1].ID)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result, err := service.Search(ctx, "quantum basket weaving", FilterAll, FilterAll)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Total != 0 {
			t.Fatalf("Expected no matches, got %d", result.Total)
		}
	})
}

func TestDirectoryService_GetTutor(t *testing.T) {
	repo := newMockRepository()
	seedDirectory(t, repo)
	service := NewDirectoryService(repo, testLogger())
	ctx := context.Background()

	t.Run("curated listing", func(t *testing.T) {
		tutor, err := service.GetTutor(ctx, "listing-1")
		if err != nil {
			t.Fatalf("GetTutor failed: %v", err)
		}
		if tutor.Name != "Chinwe Adebayo" {
			t.Errorf("Expected Chinwe Adebayo, got %s", tutor.Name)
		}
	})

	t.Run("registered tutor projection", func(t *testing.T) {
		tutor, err := service.GetTutor(ctx, "tutor-1")
		if err != nil {
			t.Fatalf("GetTutor failed: %v", err)
		}
		// Specializations stand in for both subjects and courses.
		if len(tutor.Subjects) != 2 || len(tutor.Courses) != 2 {
			t.Errorf("Expected specializations in both subjects and courses, got %v / %v", tutor.Subjects, tutor.Courses)
		}
		if len(tutor.SessionTypes) != 2 {
			t.Errorf("Registered tutors offer both session types, got %v", tutor.SessionTypes)
		}
	})

	t.Run("student account is not a tutor", func(t *testing.T) {
		student := &models.User{ID: "student-1", Name: "Amara", Email: "a@b.c", PasswordHash: "x", Role: models.RoleStudent}
		if err := repo.User().Create(ctx, student); err != nil {
			t.Fatalf("Failed to create student: %v", err)
		}
		if _, err := service.GetTutor(ctx, "student-1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound for student account, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := service.GetTutor(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}
