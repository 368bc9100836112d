package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single journal entry inside a notebook.
type Entry struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Mood       *string
	NotebookId uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

func (e *Entry) Owner() uuid.UUID {
	return e.UserId
}
