package model

import (
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Email     string     `gorm:"type:varchar(255);not null"`
	Subject   *string    `gorm:"type:varchar(255)"`
	Message   string     `gorm:"type:text;not null"`
	Status    string     `gorm:"type:varchar(20);not null;default:new;index"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type FeedbackMessage struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      *string    `gorm:"type:varchar(255)"`
	Email     string     `gorm:"type:varchar(255);not null"`
	Message   string     `gorm:"type:text;not null"`
	Rating    *int
	Status    string     `gorm:"type:varchar(20);not null;default:new;index"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (FeedbackMessage) TableName() string {
	return "feedback_messages"
}
