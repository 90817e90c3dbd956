package services

import (
	"context"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterStudentRequest = validator.RegisterStudentRequest
type RegisterTutorRequest = validator.RegisterTutorRequest
type LoginRequest = validator.LoginRequest
type BookSessionRequest = validator.BookSessionRequest
type RateSessionRequest = validator.RateSessionRequest
type SendMessageRequest = validator.SendMessageRequest

// AuthResponse carries the user and their session token after
// registration or login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// TutorListingResponse is a directory entry as the search renders it.
// Registered tutors are projected into this shape at query time, with
// specializations serving as both subjects and courses.
type TutorListingResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar,omitempty"`
	Subjects     []string `json:"subjects"`
	Courses      []string `json:"courses"`
	Year         int      `json:"year"`
	CGPA         float64  `json:"cgpa"`
	Faculty      string   `json:"faculty"`
	Rating       float64  `json:"rating"`
	Reviews      int      `json:"reviews"`
	Bio          string   `json:"bio,omitempty"`
	Availability string   `json:"availability,omitempty"`
	SessionTypes []string `json:"session_types"`
}

type DirectorySearchResponse struct {
	Tutors []*TutorListingResponse `json:"tutors"`
	Total  int                     `json:"total"`
}

type SessionListResponse struct {
	Sessions []*models.Session `json:"sessions"`
	Total    int               `json:"total"`
}

type ChatListResponse struct {
	Chats []*models.Chat `json:"chats"`
	Total int            `json:"total"`
}

type MessageListResponse struct {
	Messages []*models.ChatMessage `json:"messages"`
	Total    int                   `json:"total"`
}

type SeedResult struct {
	UsersCreated    int  `json:"users_created"`
	ListingsCreated int  `json:"listings_created"`
	SessionsCreated int  `json:"sessions_created"`
	ChatsCreated    int  `json:"chats_created"`
	Skipped         bool `json:"skipped"`
}

// ===== SERVICE INTERFACES =====

type AccountService interface {
	// Registration
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*AuthResponse, error)
	RegisterTutor(ctx context.Context, req *RegisterTutorRequest) (*AuthResponse, error)

	// Session lifecycle
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetActiveUser(ctx context.Context, token string) (*models.User, error)

	// Profile
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type DirectoryService interface {
	// Search filters the concatenation of seeded listings and registered
	// tutors. yearFilter and facultyFilter accept "all".
	Search(ctx context.Context, query, yearFilter, facultyFilter string) (*DirectorySearchResponse, error)
	GetTutor(ctx context.Context, id string) (*TutorListingResponse, error)
}

type SessionService interface {
	// Booking lifecycle
	Book(ctx context.Context, req *BookSessionRequest, studentID string) (*models.Session, error)
	Complete(ctx context.Context, sessionID, userID string) (*models.Session, error)

	// Listing
	ListUpcoming(ctx context.Context, studentID string) (*SessionListResponse, error)
	ListPast(ctx context.Context, studentID string) (*SessionListResponse, error)

	// Rating
	RateSession(ctx context.Context, sessionID string, req *RateSessionRequest, studentID string) (*models.Session, error)
}

type MessageService interface {
	ListChats(ctx context.Context, userID string) (*ChatListResponse, error)
	ListMessages(ctx context.Context, chatID, userID string) (*MessageListResponse, error)
	Send(ctx context.Context, chatID, senderID string, req *SendMessageRequest) (*models.ChatMessage, error)
}

type SeedService interface {
	// Seed inserts the demo accounts, listings, bookings, and chats.
	// Idempotent: skips when the demo data already exists.
	Seed(ctx context.Context) (*SeedResult, error)
}

type ExportService interface {
	// ExportDirectory renders the tutor directory to an xlsx workbook.
	ExportDirectory(ctx context.Context) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Account() AccountService
	Directory() DirectoryService
	Session() SessionService
	Message() MessageService

	// Additional service getters
	Seed() SeedService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
