package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// ErrorResponse is the error payload returned by all handlers.
type ErrorResponse struct {
	Message string                     `json:"message"`
	Details string                     `json:"details,omitempty"`
	Fields  validator.ValidationErrors `json:"fields,omitempty"`
}

// BaseHandler carries the shared logging and error mapping embedded by
// every handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

// LogError logs a handler error with the request-scoped logger.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// ===== ERROR HANDLING =====

// handleServiceError maps service errors to HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Fields:  services.FieldErrors(err),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid email or password",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Email is already registered",
		})
	case errors.Is(err, services.ErrAlreadyRated):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Session has already been rated",
		})
	case errors.Is(err, services.ErrNotEligible):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "CGPA does not meet tutor eligibility requirements",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
