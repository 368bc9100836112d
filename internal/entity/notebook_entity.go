package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotebookVisibility string

const (
	NotebookPrivate NotebookVisibility = "private"
	NotebookPublic  NotebookVisibility = "public"
)

type Notebook struct {
	Id          uuid.UUID
	Title       string
	Description string
	UserId      uuid.UUID
	Visibility  NotebookVisibility
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

func (n *Notebook) Owner() uuid.UUID {
	return n.UserId
}

func (n *Notebook) IsPublic() bool {
	return n.Visibility == NotebookPublic
}
