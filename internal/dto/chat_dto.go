package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	ArchivedAt *time.Time `json:"archived_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type SendMessageResponse struct {
	SessionId    uuid.UUID      `json:"session_id"`
	SessionTitle string         `json:"session_title"`
	UserMessage  ChatMessageDTO `json:"user_message"`
	Reply        ChatMessageDTO `json:"reply"`
}
