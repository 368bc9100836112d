package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Entry struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    string         `gorm:"type:text;not null"`
	Mood       *string        `gorm:"type:varchar(50)"`
	NotebookId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "entries"
}
