package service

import (
	"context"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/unitofwork"
	"reflecto-be/pkg/queue"
)

type ISystemService interface {
	EmbeddingQueueStatus(ctx context.Context, identity *entity.Identity) (*dto.EmbeddingQueueStatusResponse, error)
}

type systemService struct {
	uowFactory unitofwork.RepositoryFactory
	metrics    *queue.Metrics
}

func NewSystemService(uowFactory unitofwork.RepositoryFactory, metrics *queue.Metrics) ISystemService {
	return &systemService{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

func (s *systemService) EmbeddingQueueStatus(ctx context.Context, identity *entity.Identity) (*dto.EmbeddingQueueStatusResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	vectors, err := uow.EntryEmbeddingRepository().Count(ctx)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return &dto.EmbeddingQueueStatusResponse{
		Queued:    s.metrics.Queued(),
		Processed: s.metrics.Processed(),
		Failed:    s.metrics.Failed(),
		Pending:   s.metrics.Pending(),
		Vectors:   vectors,
	}, nil
}
