package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

type MessageHandler struct {
	BaseHandler
	service services.MessageService
}

func NewMessageHandler(service services.MessageService, logger utils.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListChats lists the user's chats
// @Summary List chats
// @Description List the current user's chats ordered by most recent activity
// @Tags messages
// @Produce json
// @Success 200 {object} services.ChatListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /chats [get]
func (h *MessageHandler) ListChats(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Listing chats")

	result, err := h.service.ListChats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetChatMessages lists a chat's messages
// @Summary List messages
// @Description List a chat's messages in order and clear its unread badge
// @Tags messages
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} services.MessageListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /chats/{id}/messages [get]
func (h *MessageHandler) GetChatMessages(c *gin.Context) {
	chatID := c.Param("id")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Listing messages", "chat_id", chatID)

	result, err := h.service.ListMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SendMessage appends a message to a chat
// @Summary Send message
// @Description Append a message to a chat the user owns and update its preview
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Chat ID"
// @Param request body services.SendMessageRequest true "Message"
// @Success 201 {object} models.ChatMessage
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /chats/{id}/messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	chatID := c.Param("id")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Sending message", "chat_id", chatID)

	msg, err := h.service.Send(c.Request.Context(), chatID, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
