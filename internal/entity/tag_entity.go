package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a per-user label. Notebooks reference tags through the
// notebook_tags join table.
type Tag struct {
	Id        uuid.UUID
	Name      string
	UserId    uuid.UUID
	CreatedAt time.Time
}

func (t *Tag) Owner() uuid.UUID {
	return t.UserId
}
