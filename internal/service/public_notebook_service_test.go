package service

import (
	"context"
	"testing"

	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicNotebookList(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	owner := seedUserWithHandle(t, factory, "ada")

	seedNotebook(t, factory, owner, entity.NotebookPublic)
	seedNotebook(t, factory, owner, entity.NotebookPublic)
	seedNotebook(t, factory, owner, entity.NotebookPrivate)

	svc := NewPublicNotebookService(factory)

	t.Run("only public notebooks are listed", func(t *testing.T) {
		page, err := svc.List(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Items, 2)
		for _, item := range page.Items {
			require.NotNil(t, item.OwnerHandle)
			assert.Equal(t, "ada", *item.OwnerHandle)
			assert.NotNil(t, item.PublishedAt)
		}
	})

	t.Run("page past the end is an empty success", func(t *testing.T) {
		page, err := svc.List(ctx, 50, 20)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 50, page.Page)
	})

	t.Run("page size normalizes instead of failing", func(t *testing.T) {
		page, err := svc.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, publicPageSizeDefault, page.PageSize)

		page, err = svc.List(ctx, 1, 5000)
		require.NoError(t, err)
		assert.Equal(t, publicPageSizeMax, page.PageSize)
	})
}

func TestPublicNotebookListByHandle(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	ada := seedUserWithHandle(t, factory, "ada")
	grace := seedUserWithHandle(t, factory, "grace")

	seedNotebook(t, factory, ada, entity.NotebookPublic)
	seedNotebook(t, factory, ada, entity.NotebookPrivate)
	seedNotebook(t, factory, grace, entity.NotebookPublic)

	svc := NewPublicNotebookService(factory)

	t.Run("scoped to one author's public notebooks", func(t *testing.T) {
		page, err := svc.ListByHandle(ctx, "ada", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "ada", *page.Items[0].OwnerHandle)
	})

	t.Run("handle lookup is case-insensitive", func(t *testing.T) {
		page, err := svc.ListByHandle(ctx, "ADA", 1, 20)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	// This surface never confirms whether a handle exists.
	t.Run("unknown handle is an empty success", func(t *testing.T) {
		page, err := svc.ListByHandle(ctx, "nobody", 1, 20)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.Total)
	})
}

func TestPublicNotebookListCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	owner := seedUserWithHandle(t, factory, "ada")
	svc := NewPublicNotebookService(factory)

	page, err := svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	seedNotebook(t, factory, owner, entity.NotebookPublic)

	// Cached until a publish state change drops the listing.
	page, err = svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	svc.Invalidate()

	page, err = svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestPublicNotebookShow(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	owner := seedUserWithHandle(t, factory, "ada")

	public := seedNotebook(t, factory, owner, entity.NotebookPublic)
	private := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	seedEntry(t, factory, owner, public.Id, "Day one")
	seedEntry(t, factory, owner, public.Id, "Day two")

	svc := NewPublicNotebookService(factory)

	t.Run("public notebook resolves with entries", func(t *testing.T) {
		resp, err := svc.Show(ctx, public.Id)
		require.NoError(t, err)
		assert.Equal(t, public.Id, resp.Id)
		assert.Len(t, resp.Entries, 2)
		require.NotNil(t, resp.OwnerHandle)
		assert.Equal(t, "ada", *resp.OwnerHandle)
	})

	// A private notebook and an absent one are indistinguishable on
	// this surface.
	t.Run("private notebook reads as not found", func(t *testing.T) {
		_, err := svc.Show(ctx, private.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("absent notebook reads as not found", func(t *testing.T) {
		_, err := svc.Show(ctx, uuid.New())
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
