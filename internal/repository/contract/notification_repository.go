package contract

import (
	"context"

	"reflecto-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on the model directly; notifications are
// a delivery concern, not a domain aggregate.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userId, id uuid.UUID) error
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
}
