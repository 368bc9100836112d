package implementation

import (
	"context"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/mapper"
	"reflecto-be/internal/model"
	"reflecto-be/internal/repository/contract"
	"reflecto-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntryEmbeddingMapper
}

func NewEntryEmbeddingRepository(db *gorm.DB) contract.EntryEmbeddingRepository {
	return &EntryEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntryEmbeddingMapper(),
	}
}

func (r *EntryEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.EntryEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *EntryEmbeddingRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", entryId).
		Delete(&model.EntryEmbedding{}).Error
}

func (r *EntryEmbeddingRepositoryImpl) DeleteByNotebookId(ctx context.Context, notebookId uuid.UUID) error {
	// Unscoped so entries already soft-deleted in this transaction still
	// match; their vectors must not outlive them.
	subQuery := r.db.Unscoped().Model(&model.Entry{}).Select("id").Where("notebook_id = ?", notebookId)
	return r.db.WithContext(ctx).
		Where("entry_id IN (?)", subQuery).
		Delete(&model.EntryEmbedding{}).Error
}

func (r *EntryEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.EntryEmbedding{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
