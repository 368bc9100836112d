package service

import (
	"context"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/owned"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INotebookService interface {
	GetAll(ctx context.Context, identity *entity.Identity) ([]*dto.ListNotebookResponse, error)
	Create(ctx context.Context, identity *entity.Identity, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error)
	Update(ctx context.Context, identity *entity.Identity, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error)
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
	Publish(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error)
	Unpublish(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error)
	SetTags(ctx context.Context, identity *entity.Identity, req *dto.SetNotebookTagsRequest) (*dto.NotebookResponse, error)
}

type notebookService struct {
	uowFactory    unitofwork.RepositoryFactory
	publicListing IPublicNotebookService
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	publicListing IPublicNotebookService,
) INotebookService {
	return &notebookService{
		uowFactory:    uowFactory,
		publicListing: publicListing,
	}
}

func notebookRepo(uow unitofwork.UnitOfWork) owned.Repository[*entity.Notebook] {
	return uow.NotebookRepository()
}

func (s *notebookService) GetAll(ctx context.Context, identity *entity.Identity) ([]*dto.ListNotebookResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: identity.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	result := make([]*dto.ListNotebookResponse, 0, len(notebooks))
	if len(notebooks) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(notebooks))
	for _, notebook := range notebooks {
		ids = append(ids, notebook.Id)
	}

	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.ByNotebookIDs{NotebookIDs: ids},
		specification.OwnedBy{UserID: identity.Id},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	counts := make(map[uuid.UUID]int64, len(notebooks))
	for _, entry := range entries {
		counts[entry.NotebookId]++
	}

	for _, notebook := range notebooks {
		result = append(result, &dto.ListNotebookResponse{
			Id:         notebook.Id,
			Title:      notebook.Title,
			Visibility: string(notebook.Visibility),
			EntryCount: counts[notebook.Id],
			CreatedAt:  notebook.CreatedAt,
		})
	}
	return result, nil
}

func (s *notebookService) Create(ctx context.Context, identity *entity.Identity, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook := entity.Notebook{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserId:      identity.Id,
		Visibility:  entity.NotebookPrivate,
		CreatedAt:   time.Now(),
	}

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return &dto.CreateNotebookResponse{Id: notebook.Id}, nil
}

func (s *notebookService) Show(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := owned.Fetch(ctx, uow, identity, id, "notebook", notebookRepo)
	if err != nil {
		return nil, err
	}

	tags, err := uow.TagRepository().FindByNotebook(ctx, notebook.Id)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return toNotebookResponse(notebook, tags), nil
}

func (s *notebookService) Update(ctx context.Context, identity *entity.Identity, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := owned.Mutate(ctx, uow, identity, req.Id, "notebook", notebookRepo,
		func(n *entity.Notebook) error {
			n.Title = req.Title
			n.Description = req.Description
			now := time.Now()
			n.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	if notebook.IsPublic() {
		s.publicListing.Invalidate()
	}

	return &dto.UpdateNotebookResponse{Id: notebook.Id}, nil
}

func (s *notebookService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if identity == nil {
		return apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if notebook == nil || notebook.Owner() != identity.Id {
		return apperror.NotFound("notebook")
	}

	wasPublic := notebook.IsPublic()

	// Entries and their vectors go with the notebook.
	entries, err := uow.EntryRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: id})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	for _, entry := range entries {
		if err := uow.EntryRepository().Delete(ctx, entry.Id); err != nil {
			return apperror.StoreUnavailable(err)
		}
	}
	if err := uow.EntryEmbeddingRepository().DeleteByNotebookId(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if wasPublic {
		s.publicListing.Invalidate()
	}
	return nil
}

func (s *notebookService) Publish(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := owned.Mutate(ctx, uow, identity, id, "notebook", notebookRepo,
		func(n *entity.Notebook) error {
			if n.IsPublic() {
				return nil // already published
			}
			now := time.Now()
			n.Visibility = entity.NotebookPublic
			n.PublishedAt = &now
			n.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.publicListing.Invalidate()
	return toNotebookResponse(notebook, nil), nil
}

func (s *notebookService) Unpublish(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := owned.Mutate(ctx, uow, identity, id, "notebook", notebookRepo,
		func(n *entity.Notebook) error {
			now := time.Now()
			n.Visibility = entity.NotebookPrivate
			n.PublishedAt = nil
			n.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.publicListing.Invalidate()
	return toNotebookResponse(notebook, nil), nil
}

func (s *notebookService) SetTags(ctx context.Context, identity *entity.Identity, req *dto.SetNotebookTagsRequest) (*dto.NotebookResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if notebook == nil || notebook.Owner() != identity.Id {
		return nil, apperror.NotFound("notebook")
	}

	// Every referenced tag must exist and belong to the caller.
	if len(req.TagIds) > 0 {
		tags, err := uow.TagRepository().FindAll(ctx,
			specification.ByIDs{IDs: req.TagIds},
			specification.OwnedBy{UserID: identity.Id},
		)
		if err != nil {
			return nil, apperror.StoreUnavailable(err)
		}
		if len(tags) != len(req.TagIds) {
			return nil, apperror.NotFound("tag")
		}
	}

	if err := uow.TagRepository().ReplaceNotebookTags(ctx, req.Id, req.TagIds); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	tags, err := uow.TagRepository().FindByNotebook(ctx, req.Id)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return toNotebookResponse(notebook, tags), nil
}

func toNotebookResponse(n *entity.Notebook, tags []*entity.Tag) *dto.NotebookResponse {
	tagDTOs := make([]dto.NotebookTagDTO, 0, len(tags))
	for _, tag := range tags {
		tagDTOs = append(tagDTOs, dto.NotebookTagDTO{Id: tag.Id, Name: tag.Name})
	}
	return &dto.NotebookResponse{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		Visibility:  string(n.Visibility),
		PublishedAt: n.PublishedAt,
		Tags:        tagDTOs,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
