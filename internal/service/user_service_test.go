package service

import (
	"context"
	"testing"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewUserService(factory)
	identity := seedUser(t, factory)

	profile, err := svc.GetProfile(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, identity.Id, profile.Id)
	assert.Nil(t, profile.PublicHandle)

	updated, err := svc.UpdateProfile(ctx, identity, &dto.UpdateProfileRequest{DisplayName: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)

	_, err = svc.GetProfile(ctx, nil)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}

func TestSetPublicHandle(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewUserService(factory)
	first := seedUser(t, factory)
	second := seedUser(t, factory)

	profile, err := svc.SetPublicHandle(ctx, first, &dto.SetPublicHandleRequest{Handle: "AdaWrites"})
	require.NoError(t, err)
	require.NotNil(t, profile.PublicHandle)
	assert.Equal(t, "adawrites", *profile.PublicHandle)

	t.Run("taken handle is rejected", func(t *testing.T) {
		_, err := svc.SetPublicHandle(ctx, second, &dto.SetPublicHandleRequest{Handle: "adawrites"})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "handle", appErr.Field)
	})

	t.Run("re-claiming your own handle is fine", func(t *testing.T) {
		profile, err := svc.SetPublicHandle(ctx, first, &dto.SetPublicHandleRequest{Handle: "ADAWrites"})
		require.NoError(t, err)
		assert.Equal(t, "adawrites", *profile.PublicHandle)
	})
}
