package service

import (
	"context"
	"strings"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITagService interface {
	GetAll(ctx context.Context, identity *entity.Identity) ([]*dto.TagResponse, error)
	Create(ctx context.Context, identity *entity.Identity, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{uowFactory: uowFactory}
}

func (s *tagService) GetAll(ctx context.Context, identity *entity.Identity) ([]*dto.TagResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags, err := uow.TagRepository().FindAll(ctx,
		specification.OwnedBy{UserID: identity.Id},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	result := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &dto.TagResponse{Id: tag.Id, Name: tag.Name, CreatedAt: tag.CreatedAt})
	}
	return result, nil
}

func (s *tagService) Create(ctx context.Context, identity *entity.Identity, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name")
	}

	// Creating an existing name returns the existing tag.
	existing, err := uow.TagRepository().FindOne(ctx,
		specification.OwnedBy{UserID: identity.Id},
		specification.ByName{Name: name},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if existing != nil {
		return &dto.TagResponse{Id: existing.Id, Name: existing.Name, CreatedAt: existing.CreatedAt}, nil
	}

	tag := entity.Tag{
		Id:        uuid.New(),
		Name:      name,
		UserId:    identity.Id,
		CreatedAt: time.Now(),
	}
	if err := uow.TagRepository().Create(ctx, &tag); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return &dto.TagResponse{Id: tag.Id, Name: tag.Name, CreatedAt: tag.CreatedAt}, nil
}

func (s *tagService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if identity == nil {
		return apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	tag, err := uow.TagRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if tag == nil || tag.Owner() != identity.Id {
		return apperror.NotFound("tag")
	}

	// Drop join rows first so no notebook keeps a dangling reference.
	if err := uow.TagRepository().DetachTag(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	if err := uow.TagRepository().Delete(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}
