package service

import (
	"context"
	"testing"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotebookService(t *testing.T) (INotebookService, IPublicNotebookService, *entity.Identity) {
	t.Helper()
	factory := newTestFactory(t)
	public := NewPublicNotebookService(factory)
	return NewNotebookService(factory, public), public, seedUser(t, factory)
}

func TestNotebookCrud(t *testing.T) {
	ctx := context.Background()
	svc, _, owner := newNotebookService(t)

	created, err := svc.Create(ctx, owner, &dto.CreateNotebookRequest{
		Title:       "Travel log",
		Description: "Notes from the road",
	})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Travel log", shown.Title)
	assert.Equal(t, string(entity.NotebookPrivate), shown.Visibility)
	assert.Nil(t, shown.PublishedAt)

	_, err = svc.Update(ctx, owner, &dto.UpdateNotebookRequest{
		Id:    created.Id,
		Title: "Travel log 2026",
	})
	require.NoError(t, err)

	shown, err = svc.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Travel log 2026", shown.Title)

	require.NoError(t, svc.Delete(ctx, owner, created.Id))

	_, err = svc.Show(ctx, owner, created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestNotebookOwnershipGates(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewNotebookService(factory, NewPublicNotebookService(factory))
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)

	t.Run("nil identity is unauthenticated", func(t *testing.T) {
		_, err := svc.Show(ctx, nil, notebook.Id)
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

		err = svc.Delete(ctx, nil, notebook.Id)
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := svc.Show(ctx, stranger, notebook.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		_, err = svc.Publish(ctx, stranger, notebook.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		err = svc.Delete(ctx, stranger, notebook.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("failed mutation leaves the notebook untouched", func(t *testing.T) {
		shown, err := svc.Show(ctx, owner, notebook.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.NotebookPrivate), shown.Visibility)
	})
}

func TestNotebookPublishLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, public, owner := newNotebookService(t)

	created, err := svc.Create(ctx, owner, &dto.CreateNotebookRequest{Title: "Garden diary"})
	require.NoError(t, err)

	published, err := svc.Publish(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.NotebookPublic), published.Visibility)
	require.NotNil(t, published.PublishedAt)

	// Publishing again keeps the original timestamp.
	again, err := svc.Publish(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, published.PublishedAt.Unix(), again.PublishedAt.Unix())

	// Visible on the public surface once published.
	page, err := public.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	unpublished, err := svc.Unpublish(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.NotebookPrivate), unpublished.Visibility)
	assert.Nil(t, unpublished.PublishedAt)

	// Gone from the public surface the moment it is unpublished.
	page, err = public.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = public.Show(ctx, created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestNotebookDeleteCascades(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewNotebookService(factory, NewPublicNotebookService(factory))
	entrySvc := NewEntryService(factory, nil, testLogger{})
	owner := seedUser(t, factory)

	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	entry := seedEntry(t, factory, owner, notebook.Id, "First entry")

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.EntryEmbeddingRepository().CreateBulk(ctx, []*entity.EntryEmbedding{{
		Id:             uuid.New(),
		Document:       "First entry",
		EmbeddingValue: make([]float32, 8),
		EntryId:        entry.Id,
		CreatedAt:      time.Now(),
	}}))
	require.Equal(t, int64(1), countEmbeddings(t, factory, entry.Id))

	require.NoError(t, svc.Delete(ctx, owner, notebook.Id))

	_, err := entrySvc.Show(ctx, owner, entry.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	// The entry's vectors hold journal text and must not outlive it.
	assert.Equal(t, int64(0), countEmbeddings(t, factory, entry.Id))
}

func TestNotebookSetTags(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewNotebookService(factory, NewPublicNotebookService(factory))
	tagSvc := NewTagService(factory)
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)

	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	ownTag, err := tagSvc.Create(ctx, owner, &dto.CreateTagRequest{Name: "gratitude"})
	require.NoError(t, err)
	foreignTag, err := tagSvc.Create(ctx, stranger, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)

	resp, err := svc.SetTags(ctx, owner, &dto.SetNotebookTagsRequest{
		Id:     notebook.Id,
		TagIds: []uuid.UUID{ownTag.Id},
	})
	require.NoError(t, err)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "gratitude", resp.Tags[0].Name)

	// A tag owned by someone else reads as absent.
	_, err = svc.SetTags(ctx, owner, &dto.SetNotebookTagsRequest{
		Id:     notebook.Id,
		TagIds: []uuid.UUID{foreignTag.Id},
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	// Clearing tags is a plain replace with the empty set.
	resp, err = svc.SetTags(ctx, owner, &dto.SetNotebookTagsRequest{Id: notebook.Id})
	require.NoError(t, err)
	assert.Empty(t, resp.Tags)
}

func TestNotebookGetAllCountsEntries(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewNotebookService(factory, NewPublicNotebookService(factory))
	owner := seedUser(t, factory)

	first := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	second := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	seedEntry(t, factory, owner, first.Id, "one")
	seedEntry(t, factory, owner, first.Id, "two")

	list, err := svc.GetAll(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)

	counts := map[uuid.UUID]int64{}
	for _, item := range list {
		counts[item.Id] = item.EntryCount
	}
	assert.Equal(t, int64(2), counts[first.Id])
	assert.Equal(t, int64(0), counts[second.Id])
}
