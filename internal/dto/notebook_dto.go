package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type CreateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNotebookRequest struct {
	Id          uuid.UUID `json:"-"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
}

type UpdateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type NotebookTagDTO struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type NotebookResponse struct {
	Id          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Visibility  string           `json:"visibility"`
	PublishedAt *time.Time       `json:"published_at"`
	Tags        []NotebookTagDTO `json:"tags"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

type ListNotebookResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Visibility string    `json:"visibility"`
	EntryCount int64     `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type SetNotebookTagsRequest struct {
	Id     uuid.UUID   `json:"-"`
	TagIds []uuid.UUID `json:"tag_ids"`
}
