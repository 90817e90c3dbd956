package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

type messageService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMessageService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) MessageService {
	return &messageService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *messageService) ListChats(ctx context.Context, userID string) (*ChatListResponse, error) {
	chats, err := s.repo.Chat().ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return &ChatListResponse{
		Chats: chats,
		Total: len(chats),
	}, nil
}

func (s *messageService) ListMessages(ctx context.Context, chatID, userID string) (*MessageListResponse, error) {
	if _, err := s.getOwnedChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.repo.Chat().ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	// Opening a chat clears its unread badge.
	chat, err := s.repo.Chat().GetByID(ctx, chatID)
	if err == nil && chat.Unread > 0 {
		if err := s.repo.Chat().UpdatePreview(ctx, chatID, chat.LastMessage, 0); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear unread count",
				"chat_id", chatID,
				"error", err)
		}
	}

	return &MessageListResponse{
		Messages: messages,
		Total:    len(messages),
	}, nil
}

func (s *messageService) Send(ctx context.Context, chatID, senderID string, req *SendMessageRequest) (*models.ChatMessage, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationFailure(errs)
	}

	if _, err := s.getOwnedChat(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		SenderID: senderID,
		Text:     req.Text,
	}

	if err := s.repo.Chat().AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if err := s.repo.Chat().UpdatePreview(ctx, chatID, req.Text, 0); err != nil {
		s.logger.WarnContext(ctx, "Failed to update chat preview",
			"chat_id", chatID,
			"error", err)
	}

	s.logger.InfoContext(ctx, "Message sent", "chat_id", chatID, "sender_id", senderID)
	return msg, nil
}

func (s *messageService) getOwnedChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	chat, err := s.repo.Chat().GetByID(ctx, chatID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	if chat.OwnerID != userID {
		return nil, ErrForbidden
	}
	return chat, nil
}
