package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type TagResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
