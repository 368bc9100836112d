package service

import (
	"context"
	"fmt"
	"time"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/model"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/repository/contract"
	"reflecto-be/pkg/events"
	pktNats "reflecto-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes a notification to connected clients. The
// websocket hub implements it.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

type INotificationService interface {
	// Start wires the NATS consumers that turn domain events into
	// user-facing notifications.
	Start() error

	GetForUser(ctx context.Context, identity *entity.Identity, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
	CountUnread(ctx context.Context, identity *entity.Identity) (int64, error)
}

type notificationService struct {
	repo       contract.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	repo contract.NotificationRepository,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		repo:       repo,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("Notification", "NATS subscriber unavailable, notifications disabled", nil)
		return nil
	}

	if err := s.subscriber.Subscribe("events."+events.TypeEntryEmbedded, "notify-entry-embedded", s.onEntryEmbedded); err != nil {
		return err
	}
	return s.subscriber.Subscribe("events."+events.TypeAssistantReplied, "notify-assistant-replied", s.onAssistantReplied)
}

func (s *notificationService) onEntryEmbedded(ctx context.Context, event events.Event) error {
	userId, ok := payloadUUID(event, "user_id")
	if !ok {
		return nil
	}
	chunks := 0
	if v, ok := event.Payload()["chunks"].(float64); ok {
		chunks = int(v)
	}

	return s.notify(ctx, userId, events.TypeEntryEmbedded,
		"Entry indexed",
		fmt.Sprintf("Your entry was indexed for search (%d chunks).", chunks),
	)
}

func (s *notificationService) onAssistantReplied(ctx context.Context, event events.Event) error {
	userId, ok := payloadUUID(event, "user_id")
	if !ok {
		return nil
	}

	return s.notify(ctx, userId, events.TypeAssistantReplied,
		"Daksha replied",
		"Your reflection session has a new reply.",
	)
}

func (s *notificationService) notify(ctx context.Context, userId uuid.UUID, kind, title, body string) error {
	notification := &model.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, *notification)
	}
	return nil
}

func (s *notificationService) GetForUser(ctx context.Context, identity *entity.Identity, limit int) ([]*model.Notification, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	notifications, err := s.repo.FindByUser(ctx, identity.Id, limit)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if identity == nil {
		return apperror.Unauthenticated()
	}
	if err := s.repo.MarkRead(ctx, identity.Id, id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (s *notificationService) CountUnread(ctx context.Context, identity *entity.Identity) (int64, error) {
	if identity == nil {
		return 0, apperror.Unauthenticated()
	}
	count, err := s.repo.CountUnread(ctx, identity.Id)
	if err != nil {
		return 0, apperror.StoreUnavailable(err)
	}
	return count, nil
}

func payloadUUID(event events.Event, key string) (uuid.UUID, bool) {
	raw, ok := event.Payload()[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
