package service

import (
	"context"
	"encoding/json"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/owned"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEntryService interface {
	GetByNotebook(ctx context.Context, identity *entity.Identity, notebookId uuid.UUID) ([]*dto.EntryResponse, error)
	Create(ctx context.Context, identity *entity.Identity, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error)
	Show(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.EntryResponse, error)
	Update(ctx context.Context, identity *entity.Identity, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error)
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
}

type entryService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewEntryService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IEntryService {
	return &entryService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func entryRepo(uow unitofwork.UnitOfWork) owned.Repository[*entity.Entry] {
	return uow.EntryRepository()
}

func (s *entryService) GetByNotebook(ctx context.Context, identity *entity.Identity, notebookId uuid.UUID) ([]*dto.EntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Listing entries requires owning the notebook.
	if _, err := owned.Fetch(ctx, uow, identity, notebookId, "notebook", notebookRepo); err != nil {
		return nil, err
	}

	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	result := make([]*dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toEntryResponse(entry))
	}
	return result, nil
}

func (s *entryService) Create(ctx context.Context, identity *entity.Identity, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The target notebook must exist and belong to the caller.
	if _, err := owned.Fetch(ctx, uow, identity, req.NotebookId, "notebook", notebookRepo); err != nil {
		return nil, err
	}

	entry := entity.Entry{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Mood:       req.Mood,
		NotebookId: req.NotebookId,
		UserId:     identity.Id,
		CreatedAt:  time.Now(),
	}

	if err := uow.EntryRepository().Create(ctx, &entry); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	s.queueEmbedding(ctx, entry.Id)

	return &dto.CreateEntryResponse{Id: entry.Id}, nil
}

func (s *entryService) Show(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.EntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := owned.Fetch(ctx, uow, identity, id, "entry", entryRepo)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

func (s *entryService) Update(ctx context.Context, identity *entity.Identity, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := owned.Mutate(ctx, uow, identity, req.Id, "entry", entryRepo,
		func(e *entity.Entry) error {
			e.Title = req.Title
			e.Content = req.Content
			e.Mood = req.Mood
			now := time.Now()
			e.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.queueEmbedding(ctx, entry.Id)

	return &dto.UpdateEntryResponse{Id: entry.Id}, nil
}

func (s *entryService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if identity == nil {
		return apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	entry, err := uow.EntryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if entry == nil || entry.Owner() != identity.Id {
		return apperror.NotFound("entry")
	}

	if err := uow.EntryEmbeddingRepository().DeleteByEntryId(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	if err := uow.EntryRepository().Delete(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

// queueEmbedding is best effort; a failed enqueue never fails the write.
func (s *entryService) queueEmbedding(ctx context.Context, entryId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.EmbedEntryMessage{EntryId: entryId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("Entry", "Failed to queue embedding job", map[string]interface{}{
			"entry_id": entryId,
			"error":    err.Error(),
		})
	}
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	return &dto.EntryResponse{
		Id:         e.Id,
		NotebookId: e.NotebookId,
		Title:      e.Title,
		Content:    e.Content,
		Mood:       e.Mood,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
