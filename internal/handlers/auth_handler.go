package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AccountService
}

func NewAuthHandler(service services.AccountService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterStudent registers a new student account
// @Summary Register student
// @Description Create a student account and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterStudentRequest true "Student registration form"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register/student [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RegisterTutor registers a new tutor account
// @Summary Register tutor
// @Description Create a tutor account after the CGPA eligibility check and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterTutorRequest true "Tutor registration form"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 422 {object} ErrorResponse "CGPA below eligibility threshold"
// @Router /auth/register/tutor [post]
func (h *AuthHandler) RegisterTutor(c *gin.Context) {
	h.LogRequest(c, "Registering tutor")

	var req services.RegisterTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.RegisterTutor(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user
// @Summary Login
// @Description Verify credentials and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the current session
// @Summary Logout
// @Description Revoke the active session for the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")

	token, err := bearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: err.Error(),
		})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user
// @Summary Current user
// @Description Get the profile of the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
