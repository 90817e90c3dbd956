package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	service services.SessionService
}

func NewSessionHandler(service services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// BookSession books a tutoring session
// @Summary Book session
// @Description Book a confirmed session with a tutor in one of the offered time slots
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body services.BookSessionRequest true "Booking form"
// @Success 201 {object} models.Session
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Router /sessions [post]
func (h *SessionHandler) BookSession(c *gin.Context) {
	h.LogRequest(c, "Booking session")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req services.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	session, err := h.service.Book(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetUpcomingSessions lists the student's confirmed sessions
// @Summary Upcoming sessions
// @Description List the current student's confirmed sessions ordered by date and time
// @Tags sessions
// @Produce json
// @Success 200 {object} services.SessionListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /sessions/upcoming [get]
func (h *SessionHandler) GetUpcomingSessions(c *gin.Context) {
	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Listing upcoming sessions")

	result, err := h.service.ListUpcoming(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPastSessions lists the student's completed sessions
// @Summary Past sessions
// @Description List the current student's completed sessions
// @Tags sessions
// @Produce json
// @Success 200 {object} services.SessionListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /sessions/past [get]
func (h *SessionHandler) GetPastSessions(c *gin.Context) {
	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Listing past sessions")

	result, err := h.service.ListPast(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompleteSession marks a session as completed
// @Summary Complete session
// @Description Move a confirmed session to completed; idempotent for already-completed sessions
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Session
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Completing session", "session_id", sessionID)

	session, err := h.service.Complete(c.Request.Context(), sessionID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RateSession rates a completed session
// @Summary Rate session
// @Description Rate a completed session exactly once and fold the rating into the tutor's average
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body services.RateSessionRequest true "Rating form"
// @Success 200 {object} models.Session
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Already rated"
// @Router /sessions/{id}/rate [post]
func (h *SessionHandler) RateSession(c *gin.Context) {
	sessionID := c.Param("id")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req services.RateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Rating session", "session_id", sessionID, "rating", req.Rating)

	session, err := h.service.RateSession(c.Request.Context(), sessionID, &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
