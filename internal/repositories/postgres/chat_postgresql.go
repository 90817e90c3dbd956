package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/cache"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

type ChatPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewChatPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ChatRepository {
	return &ChatPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a chat together with any embedded messages.
func (c *ChatPostgreSQL) Create(ctx context.Context, chat *models.Chat) error {
	if err := c.db.WithContext(ctx).Create(chat).Error; err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	cache.InvalidateChatCache(ctx, c.cacheManager, chat.ID, chat.OwnerID)
	return nil
}

// GetByID retrieves a chat without its messages
func (c *ChatPostgreSQL) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	if err := c.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetByParticipants finds the chat between two users, if one exists.
func (c *ChatPostgreSQL) GetByParticipants(ctx context.Context, ownerID, participantID string) (*models.Chat, error) {
	var chat models.Chat
	err := c.db.WithContext(ctx).
		First(&chat, "owner_id = ? AND participant_id = ?", ownerID, participantID).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListByOwner returns a user's chats, most recently active first.
func (c *ChatPostgreSQL) ListByOwner(ctx context.Context, ownerID string) ([]*models.Chat, error) {
	cacheKey := fmt.Sprintf("owner:%s:list", ownerID)
	var chats []*models.Chat

	err := c.cacheManager.Chat.CacheOrExecute(ctx, cacheKey, &chats, cache.ChatCacheConfig.TTL, func() (interface{}, error) {
		var dbChats []*models.Chat
		err := c.db.WithContext(ctx).
			Where("owner_id = ?", ownerID).
			Order("updated_at DESC").
			Find(&dbChats).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list chats: %w", err)
		}
		return dbChats, nil
	})
	if err != nil {
		return nil, err
	}

	return chats, nil
}

// ListMessages returns a chat's messages oldest first.
func (c *ChatPostgreSQL) ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := c.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// AppendMessage adds a message to a chat.
func (c *ChatPostgreSQL) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	if err := c.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, c.cacheManager.Chat, fmt.Sprintf("messages:%s:*", msg.ChatID))
	return nil
}

// UpdatePreview refreshes the chat list preview after new activity.
func (c *ChatPostgreSQL) UpdatePreview(ctx context.Context, chatID, lastMessage string, unread int) error {
	var chat models.Chat
	if err := c.db.WithContext(ctx).Select("id, owner_id").First(&chat, "id = ?", chatID).Error; err != nil {
		return err
	}

	result := c.db.WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message": lastMessage,
			"unread":       unread,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update chat preview: %w", result.Error)
	}

	cache.InvalidateChatCache(ctx, c.cacheManager, chatID, chat.OwnerID)
	return nil
}
