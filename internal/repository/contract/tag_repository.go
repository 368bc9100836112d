package contract

import (
	"context"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)

	// ReplaceNotebookTags swaps the full tag set of a notebook.
	ReplaceNotebookTags(ctx context.Context, notebookId uuid.UUID, tagIds []uuid.UUID) error
	FindByNotebook(ctx context.Context, notebookId uuid.UUID) ([]*entity.Tag, error)
	DetachTag(ctx context.Context, tagId uuid.UUID) error
}
