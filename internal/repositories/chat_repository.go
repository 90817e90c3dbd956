package repositories

import (
	"context"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// ChatRepository stores conversations and their messages.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	GetByParticipants(ctx context.Context, ownerID, participantID string) (*models.Chat, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*models.Chat, error)
	ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error)

	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
	UpdatePreview(ctx context.Context, chatID, lastMessage string, unread int) error
}
