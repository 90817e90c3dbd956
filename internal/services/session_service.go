package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/events"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// Bookable hourly slots, 09:00 AM through 08:00 PM.
var timeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
	"05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
}

func isKnownTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type sessionService struct {
	repo           repositories.Repository
	directory      DirectoryService
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewSessionService(
	repo repositories.Repository,
	directory DirectoryService,
	logger *slog.Logger,
	v *validator.Validator,
	eventPublisher events.EventPublisher,
) SessionService {
	return &sessionService{
		repo:           repo,
		directory:      directory,
		logger:         logger,
		validator:      v,
		eventPublisher: eventPublisher,
	}
}

func (s *sessionService) Book(ctx context.Context, req *BookSessionRequest, studentID string) (*models.Session, error) {
	errs := s.validator.Validate(req)
	if !isKnownTimeSlot(req.TimeSlot) {
		errs = append(errs, *validator.NewValidationError("time_slot", "must be one of the offered time slots", req.TimeSlot))
	}
	if len(errs) > 0 {
		return nil, NewValidationFailure(errs)
	}

	tutor, err := s.directory.GetTutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}

	if !offersSessionType(tutor, req.Type) {
		return nil, NewValidationFailure(validator.ValidationErrors{
			*validator.NewValidationError("type", fmt.Sprintf("tutor does not offer %s sessions", req.Type), req.Type),
		})
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TutorID:   tutor.ID,
		TutorName: tutor.Name,
		Avatar:    tutor.Avatar,
		Course:    req.Course,
		Date:      req.Date,
		Time:      req.TimeSlot,
		Duration:  60,
		Type:      models.SessionType(req.Type),
		Status:    models.SessionConfirmed,
		Notes:     req.Notes,
	}
	if session.Type == models.SessionOnline {
		session.MeetingLink = fmt.Sprintf("https://meet.tutorpal.com/%s", session.ID[:8])
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "Session booked",
		"session_id", session.ID,
		"student_id", studentID,
		"tutor_id", tutor.ID,
		"date", session.Date,
		"time", session.Time)

	s.publish(ctx, events.NewEvent(events.EventSessionBooked, events.SessionBookedEvent{
		SessionID: session.ID,
		StudentID: studentID,
		TutorID:   tutor.ID,
		Course:    session.Course,
		Date:      session.Date,
		TimeSlot:  session.Time,
	}))

	return session, nil
}

func (s *sessionService) Complete(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	session, err := s.getOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if session.Status == models.SessionCompleted {
		return session, nil
	}

	if err := s.repo.Session().UpdateStatus(ctx, sessionID, models.SessionCompleted); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	session.Status = models.SessionCompleted

	// Completed sessions count toward the tutor's profile when the
	// tutor is a registered account rather than a curated listing.
	if err := s.repo.User().IncrementSessionsCompleted(ctx, session.TutorID); err != nil &&
		!repositories.IsNotFoundError(err) {
		s.logger.WarnContext(ctx, "Failed to bump tutor session count",
			"tutor_id", session.TutorID,
			"error", err)
	}

	s.logger.InfoContext(ctx, "Session completed", "session_id", sessionID)
	return session, nil
}

func (s *sessionService) ListUpcoming(ctx context.Context, studentID string) (*SessionListResponse, error) {
	return s.listByStatus(ctx, studentID, models.SessionConfirmed)
}

func (s *sessionService) ListPast(ctx context.Context, studentID string) (*SessionListResponse, error) {
	return s.listByStatus(ctx, studentID, models.SessionCompleted)
}

func (s *sessionService) listByStatus(ctx context.Context, studentID string, status models.SessionStatus) (*SessionListResponse, error) {
	sessions, err := s.repo.Session().ListByStudent(ctx, studentID, status)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return &SessionListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	}, nil
}

func (s *sessionService) RateSession(ctx context.Context, sessionID string, req *RateSessionRequest, studentID string) (*models.Session, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationFailure(errs)
	}

	session, err := s.getOwnedSession(ctx, sessionID, studentID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionCompleted {
		return nil, NewValidationFailure(validator.ValidationErrors{
			*validator.NewValidationError("session", "only completed sessions can be rated", string(session.Status)),
		})
	}
	if session.Rated {
		return nil, ErrAlreadyRated
	}

	if err := s.repo.Session().SetRating(ctx, sessionID, req.Rating, req.Feedback); err != nil {
		// Another request won the rated=false match.
		if repositories.IsNotFoundError(err) {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("set rating: %w", err)
	}

	session.Rated = true
	session.Rating = &req.Rating
	session.Feedback = req.Feedback

	s.updateTutorAggregate(ctx, session.TutorID, req.Rating)

	s.logger.InfoContext(ctx, "Session rated",
		"session_id", sessionID,
		"rating", req.Rating)

	s.publish(ctx, events.NewEvent(events.EventSessionRated, events.SessionRatedEvent{
		SessionID: sessionID,
		StudentID: studentID,
		TutorID:   session.TutorID,
		Rating:    req.Rating,
	}))

	return session, nil
}

// ===== HELPERS =====

func (s *sessionService) getOwnedSession(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.StudentID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

// updateTutorAggregate folds a new review into a registered tutor's
// running average. Curated listings have no account row and are skipped.
func (s *sessionService) updateTutorAggregate(ctx context.Context, tutorID string, rating int) {
	tutor, err := s.repo.User().GetByID(ctx, tutorID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			s.logger.WarnContext(ctx, "Failed to load tutor for rating update",
				"tutor_id", tutorID,
				"error", err)
		}
		return
	}

	reviews := tutor.TotalReviews + 1
	average := (tutor.Rating*float64(tutor.TotalReviews) + float64(rating)) / float64(reviews)

	if err := s.repo.User().UpdateRating(ctx, tutorID, average, reviews); err != nil {
		s.logger.WarnContext(ctx, "Failed to update tutor rating",
			"tutor_id", tutorID,
			"error", err)
	}
}

func offersSessionType(tutor *TutorListingResponse, sessionType string) bool {
	for _, st := range tutor.SessionTypes {
		if st == sessionType {
			return true
		}
	}
	return false
}

func (s *sessionService) publish(ctx context.Context, event events.Event) {
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.Type,
			"error", err)
	}
}
