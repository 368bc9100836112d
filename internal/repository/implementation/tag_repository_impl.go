package implementation

import (
	"context"
	"errors"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/mapper"
	"reflecto-be/internal/model"
	"reflecto-be/internal/repository/contract"
	"reflecto-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TagMapper
}

func NewTagRepository(db *gorm.DB) contract.TagRepository {
	return &TagRepositoryImpl{
		db:     db,
		mapper: mapper.NewTagMapper(),
	}
}

func (r *TagRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *entity.Tag) error {
	m := r.mapper.ToModel(tag)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tag = *r.mapper.ToEntity(m)
	return nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
}

func (r *TagRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	var m model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error) {
	var models []*model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TagRepositoryImpl) ReplaceNotebookTags(ctx context.Context, notebookId uuid.UUID, tagIds []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("notebook_id = ?", notebookId).
		Delete(&model.NotebookTag{}).Error; err != nil {
		return err
	}

	if len(tagIds) == 0 {
		return nil
	}

	joins := make([]*model.NotebookTag, len(tagIds))
	for i, tagId := range tagIds {
		joins[i] = &model.NotebookTag{NotebookId: notebookId, TagId: tagId}
	}
	return r.db.WithContext(ctx).Create(joins).Error
}

func (r *TagRepositoryImpl) FindByNotebook(ctx context.Context, notebookId uuid.UUID) ([]*entity.Tag, error) {
	var models []*model.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN notebook_tags ON notebook_tags.tag_id = tags.id").
		Where("notebook_tags.notebook_id = ?", notebookId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TagRepositoryImpl) DetachTag(ctx context.Context, tagId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tag_id = ?", tagId).
		Delete(&model.NotebookTag{}).Error
}
