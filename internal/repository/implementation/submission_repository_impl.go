package implementation

import (
	"context"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/mapper"
	"reflecto-be/internal/model"
	"reflecto-be/internal/repository/contract"
	"reflecto-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ContactMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubmissionMapper
}

func NewContactMessageRepository(db *gorm.DB) contract.ContactMessageRepository {
	return &ContactMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubmissionMapper(),
	}
}

func (r *ContactMessageRepositoryImpl) Create(ctx context.Context, message *entity.ContactMessage) error {
	m := r.mapper.ContactToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ContactToEntity(m)
	return nil
}

func (r *ContactMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.ContactMessage{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type FeedbackMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubmissionMapper
}

func NewFeedbackMessageRepository(db *gorm.DB) contract.FeedbackMessageRepository {
	return &FeedbackMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubmissionMapper(),
	}
}

func (r *FeedbackMessageRepositoryImpl) Create(ctx context.Context, message *entity.FeedbackMessage) error {
	m := r.mapper.FeedbackToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.FeedbackToEntity(m)
	return nil
}

func (r *FeedbackMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.FeedbackMessage{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
