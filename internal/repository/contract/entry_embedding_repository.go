package contract

import (
	"context"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EntryEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.EntryEmbedding) error
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
	DeleteByNotebookId(ctx context.Context, notebookId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
