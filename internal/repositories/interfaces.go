package repositories

import (
	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// DirectoryFilters narrows the tutor directory. A nil Year or the empty
// Faculty means "all". Query matches name, subjects, and courses.
type DirectoryFilters struct {
	Query   string  `json:"query"`
	Year    *int    `json:"year"`
	Faculty *string `json:"faculty"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

type SessionFilters struct {
	StudentID *string               `json:"student_id"`
	TutorID   *string               `json:"tutor_id"`
	Status    *models.SessionStatus `json:"status"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "date"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Query   string           `json:"query"` // Search query for name or email
	Role    *models.UserRole `json:"role"`
	Faculty *string          `json:"faculty"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// DirectoryStats summarizes the directory for reports.
type DirectoryStats struct {
	TotalListings int     `json:"total_listings"`
	SeedListings  int     `json:"seed_listings"`
	TutorAccounts int     `json:"tutor_accounts"`
	AverageRating float64 `json:"average_rating"`
}

type SessionStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	RatedSessions     int     `json:"rated_sessions"`
	AverageRating     float64 `json:"average_rating"`
}
