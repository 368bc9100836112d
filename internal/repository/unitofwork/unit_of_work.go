package unitofwork

import (
	"context"

	"reflecto-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one request and, when Begin
// has been called, to one store transaction. Every ownership-checked
// mutation runs its read-check-write sequence inside a single unit of
// work so concurrent requests cannot interleave between the check and
// the write.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotebookRepository() contract.NotebookRepository
	EntryRepository() contract.EntryRepository
	TagRepository() contract.TagRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ContactMessageRepository() contract.ContactMessageRepository
	FeedbackMessageRepository() contract.FeedbackMessageRepository
	EntryEmbeddingRepository() contract.EntryEmbeddingRepository
}
