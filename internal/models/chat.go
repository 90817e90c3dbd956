package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a conversation between a user and a tutor, carrying the
// preview fields the chat list renders.
type Chat struct {
	ID              string `json:"id" gorm:"primaryKey;size:64"`
	OwnerID         string `json:"owner_id" gorm:"not null;index;size:64"`
	ParticipantID   string `json:"participant_id" gorm:"not null;size:64"`
	ParticipantName string `json:"participant_name" gorm:"not null;size:100"`
	Avatar          string `json:"avatar" gorm:"size:500"`
	Online          bool   `json:"online" gorm:"not null;default:false"`

	LastMessage string `json:"last_message" gorm:"size:500"`
	Unread      int    `json:"unread" gorm:"not null;default:0"`

	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ChatID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ChatMessage is a single message inside a chat.
type ChatMessage struct {
	ID       string `json:"id" gorm:"primaryKey;size:64"`
	ChatID   string `json:"chat_id" gorm:"not null;index;size:64"`
	SenderID string `json:"sender_id" gorm:"not null;size:64"`
	Text     string `json:"text" gorm:"not null;type:text"`

	CreatedAt time.Time `json:"created_at"`
}

func (Chat) TableName() string {
	return "chats"
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
