package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notebook struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Visibility  string     `gorm:"type:varchar(20);not null;default:private;index"`
	PublishedAt *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Notebook) TableName() string {
	return "notebooks"
}

// NotebookTag is the notebook<->tag join table.
type NotebookTag struct {
	NotebookId uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagId      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (NotebookTag) TableName() string {
	return "notebook_tags"
}
