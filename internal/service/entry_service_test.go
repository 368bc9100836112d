package service

import (
	"context"
	"testing"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryCrud(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewEntryService(factory, nil, testLogger{})
	owner := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)

	mood := "calm"
	created, err := svc.Create(ctx, owner, &dto.CreateEntryRequest{
		NotebookId: notebook.Id,
		Title:      "Evening walk",
		Content:    "Went around the lake twice.",
		Mood:       &mood,
	})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Evening walk", shown.Title)
	require.NotNil(t, shown.Mood)
	assert.Equal(t, "calm", *shown.Mood)

	_, err = svc.Update(ctx, owner, &dto.UpdateEntryRequest{
		Id:      created.Id,
		Title:   "Evening walk, revisited",
		Content: "Went around the lake twice. Saw herons.",
	})
	require.NoError(t, err)

	shown, err = svc.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Evening walk, revisited", shown.Title)
	assert.Nil(t, shown.Mood)

	require.NoError(t, svc.Delete(ctx, owner, created.Id))

	_, err = svc.Show(ctx, owner, created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestEntryCreateRequiresNotebookOwnership(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewEntryService(factory, nil, testLogger{})
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)

	t.Run("nil identity is unauthenticated", func(t *testing.T) {
		_, err := svc.Create(ctx, nil, &dto.CreateEntryRequest{
			NotebookId: notebook.Id,
			Title:      "x",
			Content:    "y",
		})
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	})

	t.Run("foreign notebook reads as not found", func(t *testing.T) {
		_, err := svc.Create(ctx, stranger, &dto.CreateEntryRequest{
			NotebookId: notebook.Id,
			Title:      "x",
			Content:    "y",
		})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("absent notebook reads as not found", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, &dto.CreateEntryRequest{
			NotebookId: uuid.New(),
			Title:      "x",
			Content:    "y",
		})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestEntryListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewEntryService(factory, nil, testLogger{})
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)

	seedEntry(t, factory, owner, notebook.Id, "older")
	seedEntry(t, factory, owner, notebook.Id, "newer")

	entries, err := svc.GetByNotebook(ctx, owner, notebook.Id)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, err = svc.GetByNotebook(ctx, stranger, notebook.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
