package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

// FilterAll is the sentinel value meaning "no filter" for the year and
// faculty dropdowns.
const FilterAll = "all"

type directoryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDirectoryService(repo repositories.Repository, logger *slog.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		logger: logger,
	}
}

// Search returns matching directory entries. The directory is the
// seeded listings followed by registered tutors, in that order, and the
// order survives filtering.
func (s *directoryService) Search(ctx context.Context, query, yearFilter, facultyFilter string) (*DirectorySearchResponse, error) {
	entries, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*TutorListingResponse, 0, len(entries))
	for _, entry := range entries {
		if matchesQuery(entry, query) &&
			matchesYear(entry, yearFilter) &&
			matchesFaculty(entry, facultyFilter) {
			matched = append(matched, entry)
		}
	}

	return &DirectorySearchResponse{
		Tutors: matched,
		Total:  len(matched),
	}, nil
}

func (s *directoryService) GetTutor(ctx context.Context, id string) (*TutorListingResponse, error) {
	listing, err := s.repo.TutorListing().GetByID(ctx, id)
	if err == nil {
		return listingResponse(listing), nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("get tutor listing: %w", err)
	}

	// Not a curated listing; try the registered tutors.
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if !user.IsTutor() {
		return nil, ErrNotFound
	}

	return tutorResponse(user), nil
}

// directory assembles the full ordered directory: seeded listings in
// seed order, then tutor accounts in registration order.
func (s *directoryService) directory(ctx context.Context) ([]*TutorListingResponse, error) {
	seeded, err := s.repo.TutorListing().ListSeeded(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seeded tutors: %w", err)
	}

	tutors, err := s.repo.User().ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registered tutors: %w", err)
	}

	entries := make([]*TutorListingResponse, 0, len(seeded)+len(tutors))
	for _, listing := range seeded {
		entries = append(entries, listingResponse(listing))
	}
	for _, tutor := range tutors {
		entries = append(entries, tutorResponse(tutor))
	}

	return entries, nil
}

// ===== MATCH RULES =====

func matchesQuery(entry *TutorListingResponse, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Name), q) {
		return true
	}
	for _, subject := range entry.Subjects {
		if strings.Contains(strings.ToLower(subject), q) {
			return true
		}
	}
	for _, course := range entry.Courses {
		if strings.Contains(strings.ToLower(course), q) {
			return true
		}
	}
	return false
}

func matchesYear(entry *TutorListingResponse, yearFilter string) bool {
	if yearFilter == "" || yearFilter == FilterAll {
		return true
	}
	year, err := strconv.Atoi(yearFilter)
	if err != nil {
		return false
	}
	return entry.Year == year
}

func matchesFaculty(entry *TutorListingResponse, facultyFilter string) bool {
	if facultyFilter == "" || facultyFilter == FilterAll {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Faculty), strings.ToLower(facultyFilter))
}

// ===== PROJECTIONS =====

func listingResponse(listing *models.TutorListing) *TutorListingResponse {
	return &TutorListingResponse{
		ID:           listing.ID,
		Name:         listing.Name,
		Avatar:       listing.Avatar,
		Subjects:     decodeStringList(listing.Subjects),
		Courses:      decodeStringList(listing.Courses),
		Year:         listing.Year,
		CGPA:         listing.CGPA,
		Faculty:      listing.Faculty,
		Rating:       listing.Rating,
		Reviews:      listing.Reviews,
		Bio:          listing.Bio,
		Availability: listing.Availability,
		SessionTypes: decodeStringList(listing.SessionTypes),
	}
}

// tutorResponse projects a tutor account into the directory shape. The
// account's specializations stand in for both subjects and courses.
func tutorResponse(user *models.User) *TutorListingResponse {
	specializations := decodeStringList(user.Specializations)

	var cgpa float64
	if user.CGPA != nil {
		cgpa = *user.CGPA
	}
	var avatar string
	if user.Avatar != nil {
		avatar = *user.Avatar
	}

	return &TutorListingResponse{
		ID:           user.ID,
		Name:         user.Name,
		Avatar:       avatar,
		Subjects:     specializations,
		Courses:      specializations,
		Year:         user.Year,
		CGPA:         cgpa,
		Faculty:      user.Faculty,
		Rating:       user.Rating,
		Reviews:      user.TotalReviews,
		Bio:          user.Bio,
		Availability: strings.Join(decodeStringList(user.Availability), ", "),
		SessionTypes: []string{string(models.SessionOnline), string(models.SessionInPerson)},
	}
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
