package service

import (
	"context"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/repository/unitofwork"

	"reflecto-be/pkg/events"
	pktNats "reflecto-be/pkg/nats"

	"github.com/google/uuid"
)

// ISubmissionService accepts contact and feedback form submissions.
// Both surfaces work for anonymous and signed-in callers alike; a
// resolved identity is attached, never required.
type ISubmissionService interface {
	SubmitContact(ctx context.Context, identity *entity.Identity, req *dto.ContactRequest) (*dto.SubmissionResponse, error)
	SubmitFeedback(ctx context.Context, identity *entity.Identity, req *dto.FeedbackRequest) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSubmissionService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISubmissionService {
	return &submissionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *submissionService) SubmitContact(ctx context.Context, identity *entity.Identity, req *dto.ContactRequest) (*dto.SubmissionResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	message := &entity.ContactMessage{
		Id:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    entity.SubmissionStatusNew,
		CreatedAt: time.Now(),
	}
	if identity != nil {
		userId := identity.Id
		message.UserId = &userId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ContactMessageRepository().Create(ctx, message); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	s.publishReceived(ctx, "contact", message.Id)

	return &dto.SubmissionResponse{
		Id:        message.Id,
		Status:    message.Status,
		CreatedAt: message.CreatedAt,
	}, nil
}

func (s *submissionService) SubmitFeedback(ctx context.Context, identity *entity.Identity, req *dto.FeedbackRequest) (*dto.SubmissionResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	// Name and Rating persist as explicit nulls when omitted.
	message := &entity.FeedbackMessage{
		Id:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Rating:    req.Rating,
		Status:    entity.SubmissionStatusNew,
		CreatedAt: time.Now(),
	}
	if identity != nil {
		userId := identity.Id
		message.UserId = &userId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeedbackMessageRepository().Create(ctx, message); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	s.publishReceived(ctx, "feedback", message.Id)

	return &dto.SubmissionResponse{
		Id:        message.Id,
		Status:    message.Status,
		CreatedAt: message.CreatedAt,
	}, nil
}

// publishReceived is best effort; intake never fails on a bus error.
func (s *submissionService) publishReceived(ctx context.Context, kind string, id uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	event := events.New(events.TypeSubmissionReceived, map[string]interface{}{
		"kind": kind,
		"id":   id,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Submission", "Failed to publish event", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}
