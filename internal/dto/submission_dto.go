package dto

import (
	"time"

	"github.com/google/uuid"
)

// Field declaration order is the validation order; the first missing
// required field is the one reported.

type ContactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Message string  `json:"message" validate:"required"`
	Subject *string `json:"subject"`
}

type FeedbackRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	Message string  `json:"message" validate:"required"`
	Name    *string `json:"name"`
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

type SubmissionResponse struct {
	Id        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
