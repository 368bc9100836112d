package contract

import (
	"context"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/repository/specification"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, message *entity.ContactMessage) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type FeedbackMessageRepository interface {
	Create(ctx context.Context, message *entity.FeedbackMessage) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
