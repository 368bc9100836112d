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

func TestTagCreate(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewTagService(factory)
	owner := seedUser(t, factory)
	other := seedUser(t, factory)

	created, err := svc.Create(ctx, owner, &dto.CreateTagRequest{Name: "  gratitude  "})
	require.NoError(t, err)
	assert.Equal(t, "gratitude", created.Name)

	// Creating the same name again returns the existing tag.
	again, err := svc.Create(ctx, owner, &dto.CreateTagRequest{Name: "gratitude"})
	require.NoError(t, err)
	assert.Equal(t, created.Id, again.Id)

	// Names are scoped per user, not global.
	theirs, err := svc.Create(ctx, other, &dto.CreateTagRequest{Name: "gratitude"})
	require.NoError(t, err)
	assert.NotEqual(t, created.Id, theirs.Id)

	_, err = svc.Create(ctx, owner, &dto.CreateTagRequest{Name: "   "})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "name", appErr.Field)

	_, err = svc.Create(ctx, nil, &dto.CreateTagRequest{Name: "gratitude"})
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}

func TestTagDeleteDetachesFromNotebooks(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewTagService(factory)
	notebookSvc := NewNotebookService(factory, NewPublicNotebookService(factory))
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)

	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	tag, err := svc.Create(ctx, owner, &dto.CreateTagRequest{Name: "travel"})
	require.NoError(t, err)

	_, err = notebookSvc.SetTags(ctx, owner, &dto.SetNotebookTagsRequest{
		Id:     notebook.Id,
		TagIds: []uuid.UUID{tag.Id},
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger, tag.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, svc.Delete(ctx, owner, tag.Id))

	shown, err := notebookSvc.Show(ctx, owner, notebook.Id)
	require.NoError(t, err)
	assert.Empty(t, shown.Tags)

	tags, err := svc.GetAll(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
