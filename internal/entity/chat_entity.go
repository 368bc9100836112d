package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSessionStatus string

const (
	ChatSessionActive   ChatSessionStatus = "active"
	ChatSessionArchived ChatSessionStatus = "archived"
)

// ChatSession is one conversation between a user and the assistant.
// Its lifecycle is {active, archived}; archive and restore are both
// idempotent, and hard deletion goes through the soft-delete column.
type ChatSession struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Status     ChatSessionStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

func (s *ChatSession) Owner() uuid.UUID {
	return s.UserId
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Metadata      map[string]interface{} // assistant-side extras (prompt hints, referenced entries)
	CreatedAt     time.Time
}
