package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatusNew is the fixed initial triage state for intake
// messages. Later states belong to the (external) triage tooling.
const SubmissionStatusNew = "new"

// ContactMessage is a contact-form submission. UserId is nil for
// anonymous submitters.
type ContactMessage struct {
	Id        uuid.UUID
	Name      string
	Email     string
	Subject   *string
	Message   string
	Status    string
	UserId    *uuid.UUID
	CreatedAt time.Time
}

// FeedbackMessage is a product-feedback submission. Name and Rating are
// optional; they persist as explicit nulls so downstream consumers see
// a stable shape.
type FeedbackMessage struct {
	Id        uuid.UUID
	Name      *string
	Email     string
	Message   string
	Rating    *int
	Status    string
	UserId    *uuid.UUID
	CreatedAt time.Time
}
