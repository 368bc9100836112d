package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
	Title      string    `json:"title" validate:"required,max=255"`
	Content    string    `json:"content" validate:"required"`
	Mood       *string   `json:"mood"`
}

type CreateEntryResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateEntryRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required,max=255"`
	Content string    `json:"content" validate:"required"`
	Mood    *string   `json:"mood"`
}

type UpdateEntryResponse struct {
	Id uuid.UUID `json:"id"`
}

type EntryResponse struct {
	Id         uuid.UUID  `json:"id"`
	NotebookId uuid.UUID  `json:"notebook_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Mood       *string    `json:"mood"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// EmbedEntryMessage is the payload queued for the embedding worker.
type EmbedEntryMessage struct {
	EntryId uuid.UUID `json:"entry_id"`
}
