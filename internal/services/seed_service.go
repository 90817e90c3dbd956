package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

const demoPassword = "password"

// The first demo student's email doubles as the idempotency marker.
const demoMarkerEmail = "amara@ucu.ac.ug"

type seedService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	bcryptCost int
}

func NewSeedService(repo repositories.Repository, logger *slog.Logger, bcryptCost int) SeedService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &seedService{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	exists, err := s.repo.User().ExistsByEmail(ctx, demoMarkerEmail)
	if err != nil {
		return nil, fmt.Errorf("check demo data: %w", err)
	}
	if exists {
		s.logger.InfoContext(ctx, "Demo data already present, skipping seed")
		return &SeedResult{Skipped: true}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	result := &SeedResult{}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		users := demoUsers(string(hash))
		for _, user := range users {
			if err := tx.User().Create(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", user.Email, err)
			}
		}
		result.UsersCreated = len(users)

		listings := demoListings()
		if err := tx.TutorListing().BulkCreate(ctx, listings); err != nil {
			return fmt.Errorf("seed listings: %w", err)
		}
		result.ListingsCreated = len(listings)

		sessions := demoSessions()
		for _, session := range sessions {
			if err := tx.Session().Create(ctx, session); err != nil {
				return fmt.Errorf("seed session %s: %w", session.ID, err)
			}
		}
		result.SessionsCreated = len(sessions)

		chats := demoChats()
		for _, chat := range chats {
			if err := tx.Chat().Create(ctx, chat); err != nil {
				return fmt.Errorf("seed chat %s: %w", chat.ID, err)
			}
		}
		result.ChatsCreated = len(chats)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Demo data seeded",
		"users", result.UsersCreated,
		"listings", result.ListingsCreated,
		"sessions", result.SessionsCreated,
		"chats", result.ChatsCreated)

	return result, nil
}

// ===== DEMO DATA =====

func jsonList(items ...string) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func demoUsers(passwordHash string) []*models.User {
	return []*models.User{
		{
			ID:           "demo-student-1",
			Name:         "Amara Okafor",
			Email:        "amara@ucu.ac.ug",
			PasswordHash: passwordHash,
			Role:         models.RoleStudent,
			Year:         3,
			Major:        "Software Engineering",
			Faculty:      "Engineering and Computing",
			Avatar:       strPtr("https://images.unsplash.com/photo-1531123897727-8f129e1688ce?w=400&h=400&fit=crop"),
			Bio:          "Third-year Software Engineering student passionate about algorithms and data structures",
			Rating:       4.8,
		},
		{
			ID:           "demo-student-2",
			Name:         "Kwesi Mensah",
			Email:        "kwesi@ucu.ac.ug",
			PasswordHash: passwordHash,
			Role:         models.RoleStudent,
			Year:         2,
			Major:        "Business Administration",
			Faculty:      "Business and Management",
			Avatar:       strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop"),
			Bio:          "Business student focused on entrepreneurship and financial management",
			Rating:       4.5,
		},
		{
			ID:                "demo-tutor-1",
			Name:              "Chinwe Adebayo",
			Email:             "chinwe@ucu.ac.ug",
			PasswordHash:      passwordHash,
			Role:              models.RoleTutor,
			CGPA:              floatPtr(4.85),
			Year:              4,
			Major:             "Computer Science",
			Faculty:           "Engineering and Computing",
			Specializations:   jsonList("Data Structures", "Algorithms", "Web Development"),
			Avatar:            strPtr("https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?w=400&h=400&fit=crop"),
			Bio:               "Senior CS student with a passion for teaching. Specialized in algorithms and data structures.",
			Rating:            4.9,
			TotalReviews:      45,
			SessionsCompleted: 67,
			Availability:      jsonList("Monday 2-4 PM", "Wednesday 10 AM-12 PM", "Friday 3-5 PM"),
		},
		{
			ID:                "demo-tutor-2",
			Name:              "Kofi Asante",
			Email:             "kofi@ucu.ac.ug",
			PasswordHash:      passwordHash,
			Role:              models.RoleTutor,
			CGPA:              floatPtr(4.75),
			Year:              4,
			Major:             "Accounting",
			Faculty:           "Business and Management",
			Specializations:   jsonList("Financial Accounting", "Cost Accounting", "Auditing"),
			Avatar:            strPtr("https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=400&h=400&fit=crop"),
			Bio:               "Experienced accounting tutor helping students master financial concepts and excel in exams.",
			Rating:            4.8,
			TotalReviews:      38,
			SessionsCompleted: 52,
			Availability:      jsonList("Tuesday 3-5 PM", "Thursday 11 AM-1 PM", "Saturday 2-4 PM"),
		},
		{
			ID:                "demo-tutor-3",
			Name:              "Zara Nkosi",
			Email:             "zara@ucu.ac.ug",
			PasswordHash:      passwordHash,
			Role:              models.RoleTutor,
			CGPA:              floatPtr(4.92),
			Year:              3,
			Major:             "Software Engineering",
			Faculty:           "Engineering and Computing",
			Specializations:   jsonList("Object-Oriented Programming", "Database Systems", "Mobile Development"),
			Avatar:            strPtr("https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&h=400&fit=crop"),
			Bio:               "Top-performing engineering student dedicated to helping peers understand complex programming concepts.",
			Rating:            5.0,
			TotalReviews:      29,
			SessionsCompleted: 42,
			Availability:      jsonList("Monday 1-3 PM", "Wednesday 2-4 PM", "Friday 10 AM-12 PM"),
		},
	}
}

func demoListings() []*models.TutorListing {
	return []*models.TutorListing{
		{
			ID:           "listing-1",
			Name:         "Chinwe Adebayo",
			Avatar:       "https://images.unsplash.com/photo-1573496358961-3c82861ab8f4?w=400&h=400&fit=crop",
			Subjects:     jsonList("Software Engineering", "Data Structures"),
			Courses:      jsonList("ENG201", "ENG305", "CS401"),
			Year:         4,
			CGPA:         4.8,
			Faculty:      "Engineering and Computing",
			Rating:       4.9,
			Reviews:      127,
			Bio:          "First Class Honours student with 4.8 CGPA at UCU, specializing in algorithms and software architecture",
			Availability: "Mon, Wed, Fri",
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    1,
		},
		{
			ID:           "listing-2",
			Name:         "Kwame Mensah",
			Avatar:       "https://images.unsplash.com/photo-1656313826909-1f89d1702a81?w=400&h=400&fit=crop",
			Subjects:     jsonList("Mechanical Engineering", "Thermodynamics"),
			Courses:      jsonList("ENG101", "ENG202", "MECH301"),
			Year:         3,
			CGPA:         4.6,
			Faculty:      "Engineering and Computing",
			Rating:       4.8,
			Reviews:      94,
			Bio:          "Top Engineering student with 4.6 CGPA, passionate about making complex concepts simple",
			Availability: "Tue, Thu, Sat",
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    2,
		},
		{
			ID:           "listing-3",
			Name:         "Zainab Kamara",
			Avatar:       "https://images.unsplash.com/photo-1638727295415-286409421143?w=400&h=400&fit=crop",
			Subjects:     jsonList("Financial Management", "Accounting"),
			Courses:      jsonList("BUS201", "BUS305", "ACC301"),
			Year:         4,
			CGPA:         4.9,
			Faculty:      "Business",
			Rating:       5.0,
			Reviews:      156,
			Bio:          "Outstanding First Class Honours student with 4.9 CGPA at UCU, expertise in finance and accounting",
			Availability: "Mon, Tue, Thu",
			SessionTypes: jsonList("online"),
			Seed:         true,
			SeedOrder:    3,
		},
		{
			ID:           "listing-4",
			Name:         "Tunde Okonkwo",
			Avatar:       "https://images.unsplash.com/photo-1656313836297-0cd072f08f43?w=400&h=400&fit=crop",
			Subjects:     jsonList("Marketing", "Business Strategy"),
			Courses:      jsonList("BUS101", "BUS201", "MKT301"),
			Year:         3,
			CGPA:         4.5,
			Faculty:      "Business",
			Rating:       4.7,
			Reviews:      83,
			Bio:          "High-achieving Business student with 4.5 CGPA, helping peers excel in marketing and strategy",
			Availability: "Mon, Wed, Fri, Sat",
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    4,
		},
		{
			ID:           "listing-5",
			Name:         "Amina Diop",
			Avatar:       "https://images.unsplash.com/photo-1685539527395-4417cebc39aa?w=400&h=400&fit=crop",
			Subjects:     jsonList("Computer Networks", "Cybersecurity"),
			Courses:      jsonList("CS301", "CS405", "NET201"),
			Year:         4,
			CGPA:         4.7,
			Faculty:      "Engineering and Computing",
			Rating:       4.9,
			Reviews:      112,
			Bio:          "Elite Computing student with 4.7 CGPA, specializing in network security and ethical hacking",
			Availability: "Tue, Wed, Fri",
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    5,
		},
		{
			ID:           "listing-6",
			Name:         "Oluwatobi Adeleke",
			Avatar:       "https://images.unsplash.com/photo-1631131431211-4f768d89087d?w=400&h=400&fit=crop",
			Subjects:     jsonList("Economics", "Statistics"),
			Courses:      jsonList("ECON201", "STAT301", "BUS202"),
			Year:         3,
			CGPA:         4.6,
			Faculty:      "Business",
			Rating:       4.8,
			Reviews:      98,
			Bio:          "Economics major with 4.6 CGPA at UCU, excellent at simplifying statistical and econometric concepts",
			Availability: "Mon, Thu, Sat",
			SessionTypes: jsonList("online", "in-person"),
			Seed:         true,
			SeedOrder:    6,
		},
	}
}

func demoSessions() []*models.Session {
	return []*models.Session{
		{
			ID:          "demo-session-1",
			StudentID:   "demo-student-1",
			TutorID:     "listing-1",
			TutorName:   "Chinwe Adebayo",
			Avatar:      "https://images.unsplash.com/photo-1573496358961-3c82861ab8f4?w=400&h=400&fit=crop",
			Course:      "ENG305 - Data Structures & Algorithms",
			Date:        "2025-10-25",
			Time:        "02:00 PM",
			Duration:    60,
			Type:        models.SessionOnline,
			Status:      models.SessionConfirmed,
			MeetingLink: "https://meet.tutorpal.com/abc123",
		},
		{
			ID:        "demo-session-2",
			StudentID: "demo-student-1",
			TutorID:   "listing-2",
			TutorName: "Kwame Mensah",
			Avatar:    "https://images.unsplash.com/photo-1656313826909-1f89d1702a81?w=400&h=400&fit=crop",
			Course:    "MECH301 - Thermodynamics",
			Date:      "2025-10-27",
			Time:      "10:00 AM",
			Duration:  60,
			Type:      models.SessionInPerson,
			Status:    models.SessionConfirmed,
			Location:  "Engineering Library, Room 204",
		},
		{
			ID:        "demo-session-3",
			StudentID: "demo-student-1",
			TutorID:   "listing-3",
			TutorName: "Zainab Kamara",
			Avatar:    "https://images.unsplash.com/photo-1638727295415-286409421143?w=400&h=400&fit=crop",
			Course:    "BUS305 - Financial Management",
			Date:      "2025-10-20",
			Time:      "03:00 PM",
			Duration:  60,
			Type:      models.SessionOnline,
			Status:    models.SessionCompleted,
			Rated:     false,
		},
		{
			ID:        "demo-session-4",
			StudentID: "demo-student-1",
			TutorID:   "listing-6",
			TutorName: "Oluwatobi Adeleke",
			Avatar:    "https://images.unsplash.com/photo-1631131431211-4f768d89087d?w=400&h=400&fit=crop",
			Course:    "ECON201 - Microeconomics",
			Date:      "2025-10-18",
			Time:      "11:00 AM",
			Duration:  60,
			Type:      models.SessionInPerson,
			Status:    models.SessionCompleted,
			Rated:     true,
			Rating:    intPtr(5),
		},
	}
}

func demoChats() []*models.Chat {
	return []*models.Chat{
		{
			ID:              "demo-chat-1",
			OwnerID:         "demo-student-1",
			ParticipantID:   "listing-1",
			ParticipantName: "Chinwe Adebayo",
			Avatar:          "https://images.unsplash.com/photo-1573496358961-3c82861ab8f4?w=400&h=400&fit=crop",
			Online:          true,
			LastMessage:     "Thanks for the great session! See you next week.",
			Unread:          2,
			Messages: []models.ChatMessage{
				{ID: "demo-msg-1", ChatID: "demo-chat-1", SenderID: "listing-1", Text: "Hi! Ready for our session tomorrow?"},
				{ID: "demo-msg-2", ChatID: "demo-chat-1", SenderID: "demo-student-1", Text: "Yes! I reviewed the chapters you recommended."},
				{ID: "demo-msg-3", ChatID: "demo-chat-1", SenderID: "listing-1", Text: "Great! Do you have any specific questions?"},
				{ID: "demo-msg-4", ChatID: "demo-chat-1", SenderID: "demo-student-1", Text: "I'm struggling with dynamic programming concepts"},
				{ID: "demo-msg-5", ChatID: "demo-chat-1", SenderID: "listing-1", Text: "Thanks for the great session! See you next week."},
			},
		},
		{
			ID:              "demo-chat-2",
			OwnerID:         "demo-student-1",
			ParticipantID:   "listing-2",
			ParticipantName: "Kwame Mensah",
			Avatar:          "https://images.unsplash.com/photo-1656313826909-1f89d1702a81?w=400&h=400&fit=crop",
			Online:          false,
			LastMessage:     "Can we reschedule to Thursday?",
			Unread:          0,
		},
		{
			ID:              "demo-chat-3",
			OwnerID:         "demo-student-1",
			ParticipantID:   "listing-3",
			ParticipantName: "Zainab Kamara",
			Avatar:          "https://images.unsplash.com/photo-1638727295415-286409421143?w=400&h=400&fit=crop",
			Online:          true,
			LastMessage:     "I uploaded the study materials",
			Unread:          0,
		},
	}
}
