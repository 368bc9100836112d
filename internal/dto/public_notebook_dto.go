package dto

import (
	"time"

	"github.com/google/uuid"
)

type PublicEntryDTO struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type PublicNotebookResponse struct {
	Id          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	OwnerHandle *string          `json:"owner_handle"`
	PublishedAt *time.Time       `json:"published_at"`
	Entries     []PublicEntryDTO `json:"entries"`
}

type PublicNotebookListItem struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OwnerHandle *string    `json:"owner_handle"`
	PublishedAt *time.Time `json:"published_at"`
}

// PublicNotebookPage is a 1-indexed page. A page past the end is a
// success with empty items, never an error.
type PublicNotebookPage struct {
	Items    []PublicNotebookListItem `json:"items"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Total    int64                    `json:"total"`
}
