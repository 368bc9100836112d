// Package owned implements the ownership-checked access pattern shared
// by every endpoint that reads or mutates a caller-scoped resource.
//
// The rules, in order:
//
//  1. no identity            -> Unauthenticated
//  2. resource absent        -> NotFound
//  3. owner != identity      -> NotFound (indistinguishable from absent,
//     so a non-owner can never probe for another user's resources)
//
// Mutations run their read-check-write sequence inside one store
// transaction, which closes the check/write race between two concurrent
// requests for the same resource.
package owned

import (
	"context"

	"github.com/google/uuid"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"
)

// Resource is any entity with a single owning user.
type Resource interface {
	comparable
	Owner() uuid.UUID
}

// Repository is the slice of a repository contract this package needs.
// The full per-aggregate contracts satisfy it structurally.
type Repository[T Resource] interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (T, error)
	Update(ctx context.Context, resource T) error
}

// Mutate loads the resource, verifies ownership, applies the state
// transition and persists it, all inside one transaction. Exactly one
// store mutation becomes observable; any failure rolls back.
//
// apply must be a pure description of the transition: it mutates the
// entity in memory and may reject the transition with a taxonomy error.
func Mutate[T Resource](
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	identity *entity.Identity,
	resourceId uuid.UUID,
	resourceName string,
	repo func(unitofwork.UnitOfWork) Repository[T],
	apply func(T) error,
) (T, error) {
	var zero T

	if identity == nil {
		return zero, apperror.Unauthenticated()
	}

	if err := uow.Begin(ctx); err != nil {
		return zero, apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	r := repo(uow)

	resource, err := r.FindOne(ctx, specification.ByID{ID: resourceId})
	if err != nil {
		return zero, apperror.StoreUnavailable(err)
	}
	if resource == zero {
		return zero, apperror.NotFound(resourceName)
	}
	if resource.Owner() != identity.Id {
		return zero, apperror.NotFound(resourceName)
	}

	if err := apply(resource); err != nil {
		return zero, err
	}

	if err := r.Update(ctx, resource); err != nil {
		return zero, apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return zero, apperror.StoreUnavailable(err)
	}

	return resource, nil
}

// Fetch is the read-only half of the pattern: same identity and
// ownership gates, no transaction.
func Fetch[T Resource](
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	identity *entity.Identity,
	resourceId uuid.UUID,
	resourceName string,
	repo func(unitofwork.UnitOfWork) Repository[T],
) (T, error) {
	var zero T

	if identity == nil {
		return zero, apperror.Unauthenticated()
	}

	resource, err := repo(uow).FindOne(ctx, specification.ByID{ID: resourceId})
	if err != nil {
		return zero, apperror.StoreUnavailable(err)
	}
	if resource == zero {
		return zero, apperror.NotFound(resourceName)
	}
	if resource.Owner() != identity.Id {
		return zero, apperror.NotFound(resourceName)
	}

	return resource, nil
}
