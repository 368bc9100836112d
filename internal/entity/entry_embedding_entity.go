package entity

import (
	"time"

	"github.com/google/uuid"
)

type EntryEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	EntryId        uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
