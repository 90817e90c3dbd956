package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests. Records
// keep insertion order so directory and session ordering can be asserted.
type mockRepository struct {
	mu sync.Mutex

	users        []*models.User
	listings     []*models.TutorListing
	sessions     []*models.Session
	chats        []*models.Chat
	chatMessages []*models.ChatMessage

	userRepo    *mockUserRepository
	listingRepo *mockTutorListingRepository
	sessionRepo *mockSessionRepository
	chatRepo    *mockChatRepository
}

func newMockRepository() *mockRepository {
	m := &mockRepository{}
	m.userRepo = &mockUserRepository{m}
	m.listingRepo = &mockTutorListingRepository{m}
	m.sessionRepo = &mockSessionRepository{m}
	m.chatRepo = &mockChatRepository{m}
	return m
}

func (m *mockRepository) User() repositories.UserRepository                 { return m.userRepo }
func (m *mockRepository) TutorListing() repositories.TutorListingRepository { return m.listingRepo }
func (m *mockRepository) Session() repositories.SessionRepository           { return m.sessionRepo }
func (m *mockRepository) Chat() repositories.ChatRepository                 { return m.chatRepo }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USER =====

type mockUserRepository struct {
	m *mockRepository
}

func (r *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	r.m.users = append(r.m.users, user)
	return nil
}

func (r *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, u := range r.m.users {
		if u.ID == user.ID {
			r.m.users[i] = user
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

func (r *mockUserRepository) UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.ID == id {
			u.Rating = rating
			u.TotalReviews = totalReviews
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

func (r *mockUserRepository) IncrementSessionsCompleted(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.ID == id {
			u.SessionsCompleted++
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, u := range r.m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.Query != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filters.Query)) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepository) ListTutors(ctx context.Context) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, u := range r.m.users {
		if u.Role == models.RoleTutor {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *mockUserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *mockUserRepository) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return u.Role == role, nil
}

// ===== TUTOR LISTING =====

type mockTutorListingRepository struct {
	m *mockRepository
}

func (r *mockTutorListingRepository) Create(ctx context.Context, listing *models.TutorListing) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.listings = append(r.m.listings, listing)
	return nil
}

func (r *mockTutorListingRepository) BulkCreate(ctx context.Context, listings []*models.TutorListing) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.listings = append(r.m.listings, listings...)
	return nil
}

func (r *mockTutorListingRepository) GetByID(ctx context.Context, id string) (*models.TutorListing, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, l := range r.m.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockTutorListingRepository) ListSeeded(ctx context.Context) ([]*models.TutorListing, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.TutorListing
	for _, l := range r.m.listings {
		if l.Seed {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SeedOrder < out[j].SeedOrder })
	return out, nil
}

func (r *mockTutorListingRepository) CountSeeded(ctx context.Context) (int64, error) {
	seeded, _ := r.ListSeeded(ctx)
	return int64(len(seeded)), nil
}

func (r *mockTutorListingRepository) Stats(ctx context.Context) (*repositories.DirectoryStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stats := &repositories.DirectoryStats{TotalListings: len(r.m.listings)}
	var sum float64
	for _, l := range r.m.listings {
		if l.Seed {
			stats.SeedListings++
		}
		sum += l.Rating
	}
	for _, u := range r.m.users {
		if u.Role == models.RoleTutor {
			stats.TutorAccounts++
		}
	}
	if len(r.m.listings) > 0 {
		stats.AverageRating = sum / float64(len(r.m.listings))
	}
	return stats, nil
}

// ===== SESSION =====

type mockSessionRepository struct {
	m *mockRepository
}

func (r *mockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions = append(r.m.sessions, session)
	return nil
}

func (r *mockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockSessionRepository) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.Session, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Session
	for _, s := range r.m.sessions {
		if filters.StudentID != nil && s.StudentID != *filters.StudentID {
			continue
		}
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *mockSessionRepository) ListByStudent(ctx context.Context, studentID string, status models.SessionStatus) ([]*models.Session, error) {
	sessions, _, err := r.List(ctx, repositories.SessionFilters{
		StudentID: &studentID,
		Status:    &status,
	})
	return sessions, err
}

func (r *mockSessionRepository) UpdateStatus(ctx context.Context, id string, status models.SessionStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.sessions {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

func (r *mockSessionRepository) SetRating(ctx context.Context, id string, rating int, feedback string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.sessions {
		if s.ID == id && !s.Rated {
			s.Rated = true
			s.Rating = &rating
			s.Feedback = feedback
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

func (r *mockSessionRepository) Stats(ctx context.Context) (*repositories.SessionStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stats := &repositories.SessionStats{TotalSessions: len(r.m.sessions)}
	var sum, rated int
	for _, s := range r.m.sessions {
		if s.Status == models.SessionCompleted {
			stats.CompletedSessions++
		}
		if s.Rated && s.Rating != nil {
			rated++
			sum += *s.Rating
		}
	}
	stats.RatedSessions = rated
	if rated > 0 {
		stats.AverageRating = float64(sum) / float64(rated)
	}
	return stats, nil
}

// ===== CHAT =====

type mockChatRepository struct {
	m *mockRepository
}

func (r *mockChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.chats = append(r.m.chats, chat)
	for i := range chat.Messages {
		msg := chat.Messages[i]
		r.m.chatMessages = append(r.m.chatMessages, &msg)
	}
	return nil
}

func (r *mockChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.chats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockChatRepository) GetByParticipants(ctx context.Context, ownerID, participantID string) (*models.Chat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.chats {
		if c.OwnerID == ownerID && c.ParticipantID == participantID {
			return c, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *mockChatRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Chat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Chat
	for _, c := range r.m.chats {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *mockChatRepository) ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.ChatMessage
	for _, msg := range r.m.chatMessages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *mockChatRepository) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.chatMessages = append(r.m.chatMessages, msg)
	return nil
}

func (r *mockChatRepository) UpdatePreview(ctx context.Context, chatID, lastMessage string, unread int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.chats {
		if c.ID == chatID {
			c.LastMessage = lastMessage
			c.Unread = unread
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}
