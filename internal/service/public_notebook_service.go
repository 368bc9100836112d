package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	publicPageSizeDefault = 20
	publicPageSizeMax     = 100

	publicCacheTTL = time.Minute
)

// IPublicNotebookService serves the unauthenticated read surface. Only
// notebooks whose visibility is public at read time are reachable; the
// filter is applied in the store query, never after the fact.
type IPublicNotebookService interface {
	List(ctx context.Context, page, pageSize int) (*dto.PublicNotebookPage, error)
	ListByHandle(ctx context.Context, handle string, page, pageSize int) (*dto.PublicNotebookPage, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PublicNotebookResponse, error)

	// Invalidate drops cached listings after a publish state change.
	Invalidate()
}

type publicNotebookService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewPublicNotebookService(uowFactory unitofwork.RepositoryFactory) IPublicNotebookService {
	return &publicNotebookService{
		uowFactory: uowFactory,
		cache:      gocache.New(publicCacheTTL, 5*time.Minute),
	}
}

func (s *publicNotebookService) List(ctx context.Context, page, pageSize int) (*dto.PublicNotebookPage, error) {
	// Pages are 1-indexed. Out-of-range inputs normalize instead of failing.
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = publicPageSizeDefault
	}
	if pageSize > publicPageSizeMax {
		pageSize = publicPageSizeMax
	}

	cacheKey := fmt.Sprintf("list:%d:%d", page, pageSize)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.PublicNotebookPage), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.NotebookRepository().Count(ctx, specification.PublicOnly{})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.PublicOnly{},
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Offset: (page - 1) * pageSize, Limit: pageSize},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	items := make([]dto.PublicNotebookListItem, 0, len(notebooks))
	handles := make(map[uuid.UUID]*string)
	for _, notebook := range notebooks {
		handle, ok := handles[notebook.UserId]
		if !ok {
			owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: notebook.UserId})
			if err != nil {
				return nil, apperror.StoreUnavailable(err)
			}
			if owner != nil {
				handle = owner.PublicHandle
			}
			handles[notebook.UserId] = handle
		}

		items = append(items, dto.PublicNotebookListItem{
			Id:          notebook.Id,
			Title:       notebook.Title,
			Description: notebook.Description,
			OwnerHandle: handle,
			PublishedAt: notebook.PublishedAt,
		})
	}

	// A page past the end is an empty success, not an error.
	result := &dto.PublicNotebookPage{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}

	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

// ListByHandle pages through one author's public notebooks. An unknown
// handle is an empty success: this surface never confirms whether a
// handle exists.
func (s *publicNotebookService) ListByHandle(ctx context.Context, handle string, page, pageSize int) (*dto.PublicNotebookPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = publicPageSizeDefault
	}
	if pageSize > publicPageSizeMax {
		pageSize = publicPageSizeMax
	}

	handle = strings.ToLower(handle)

	cacheKey := fmt.Sprintf("handle:%s:%d:%d", handle, page, pageSize)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.PublicNotebookPage), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	empty := &dto.PublicNotebookPage{
		Items:    []dto.PublicNotebookListItem{},
		Page:     page,
		PageSize: pageSize,
	}

	owner, err := uow.UserRepository().FindOne(ctx, specification.ByPublicHandle{Handle: handle})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if owner == nil {
		s.cache.Set(cacheKey, empty, gocache.DefaultExpiration)
		return empty, nil
	}

	ownerScope := []specification.Specification{
		specification.PublicOnly{},
		specification.OwnedBy{UserID: owner.Id},
	}

	total, err := uow.NotebookRepository().Count(ctx, ownerScope...)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		append(ownerScope,
			specification.OrderBy{Field: "published_at", Desc: true},
			specification.Pagination{Offset: (page - 1) * pageSize, Limit: pageSize},
		)...,
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	items := make([]dto.PublicNotebookListItem, 0, len(notebooks))
	for _, notebook := range notebooks {
		items = append(items, dto.PublicNotebookListItem{
			Id:          notebook.Id,
			Title:       notebook.Title,
			Description: notebook.Description,
			OwnerHandle: owner.PublicHandle,
			PublishedAt: notebook.PublishedAt,
		})
	}

	result := &dto.PublicNotebookPage{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}

	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

func (s *publicNotebookService) Show(ctx context.Context, id uuid.UUID) (*dto.PublicNotebookResponse, error) {
	cacheKey := "show:" + id.String()
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.PublicNotebookResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Private and absent are indistinguishable on this surface.
	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.PublicOnly{},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook")
	}

	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	var handle *string
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: notebook.UserId})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if owner != nil {
		handle = owner.PublicHandle
	}

	entryDTOs := make([]dto.PublicEntryDTO, 0, len(entries))
	for _, entry := range entries {
		entryDTOs = append(entryDTOs, dto.PublicEntryDTO{
			Id:        entry.Id,
			Title:     entry.Title,
			Content:   entry.Content,
			CreatedAt: entry.CreatedAt,
		})
	}

	result := &dto.PublicNotebookResponse{
		Id:          notebook.Id,
		Title:       notebook.Title,
		Description: notebook.Description,
		OwnerHandle: handle,
		PublishedAt: notebook.PublishedAt,
		Entries:     entryDTOs,
	}

	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

func (s *publicNotebookService) Invalidate() {
	s.cache.Flush()
}
