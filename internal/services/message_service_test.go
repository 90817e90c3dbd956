package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

func newMessageServiceForTest(t *testing.T) (MessageService, *mockRepository) {
	t.Helper()

	repo := newMockRepository()
	chat := &models.Chat{
		ID:              "chat-1",
		OwnerID:         "student-1",
		ParticipantID:   "tutor-1",
		ParticipantName: "Zara Nkosi",
		LastMessage:     "See you Friday!",
		Unread:          2,
		Messages: []models.ChatMessage{
			{ID: "msg-1", ChatID: "chat-1", SenderID: "tutor-1", Text: "Hi! Ready for our session?"},
			{ID: "msg-2", ChatID: "chat-1", SenderID: "student-1", Text: "Yes, see you Friday!"},
		},
	}
	if err := repo.Chat().Create(context.Background(), chat); err != nil {
		t.Fatalf("Failed to create chat: %v", err)
	}

	return NewMessageService(repo, testLogger(), validator.New()), repo
}

func TestMessageService_ListChats(t *testing.T) {
	service, _ := newMessageServiceForTest(t)
	ctx := context.Background()

	result, err := service.ListChats(ctx, "student-1")
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if result.Total != 1 || result.Chats[0].ID != "chat-1" {
		t.Fatalf("Expected chat-1, got %+v", result.Chats)
	}

	empty, err := service.ListChats(ctx, "student-2")
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("Expected no chats for other user, got %d", empty.Total)
	}
}

func TestMessageService_ListMessages(t *testing.T) {
	service, repo := newMessageServiceForTest(t)
	ctx := context.Background()

	result, err := service.ListMessages(ctx, "chat-1", "student-1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("Expected 2 messages, got %d", result.Total)
	}

	// Opening the chat clears the unread badge.
	chat, err := repo.Chat().GetByID(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Failed to load chat: %v", err)
	}
	if chat.Unread != 0 {
		t.Errorf("Expected unread count cleared, got %d", chat.Unread)
	}

	t.Run("foreign chat is forbidden", func(t *testing.T) {
		if _, err := service.ListMessages(ctx, "chat-1", "student-2"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown chat", func(t *testing.T) {
		if _, err := service.ListMessages(ctx, "missing", "student-1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestMessageService_Send(t *testing.T) {
	service, repo := newMessageServiceForTest(t)
	ctx := context.Background()

	msg, err := service.Send(ctx, "chat-1", "student-1", &SendMessageRequest{Text: "Can we move to 3 PM?"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.ID == "" || msg.ChatID != "chat-1" || msg.SenderID != "student-1" {
		t.Errorf("Unexpected message: %+v", msg)
	}

	messages, err := repo.Chat().ListMessages(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Failed to list messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages after send, got %d", len(messages))
	}

	chat, err := repo.Chat().GetByID(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Failed to load chat: %v", err)
	}
	if chat.LastMessage != "Can we move to 3 PM?" {
		t.Errorf("Expected preview update, got %q", chat.LastMessage)
	}

	t.Run("empty message rejected", func(t *testing.T) {
		if _, err := service.Send(ctx, "chat-1", "student-1", &SendMessageRequest{}); !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("Expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("foreign chat is forbidden", func(t *testing.T) {
		if _, err := service.Send(ctx, "chat-1", "student-2", &SendMessageRequest{Text: "hi"}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("Expected ErrForbidden, got %v", err)
		}
	})
}
