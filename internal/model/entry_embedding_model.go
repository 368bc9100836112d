package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type EntryEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Document       string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	EntryId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex     int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (EntryEmbedding) TableName() string {
	return "entry_embeddings"
}
