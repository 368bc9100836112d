package service

import (
	"context"
	"testing"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewSubmissionService(factory, nil, testLogger{})

	t.Run("anonymous submission succeeds", func(t *testing.T) {
		resp, err := svc.SubmitContact(ctx, nil, &dto.ContactRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "The export button is broken.",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusNew, resp.Status)
		assert.NotZero(t, resp.Id)
	})

	t.Run("signed-in identity is attached, not required", func(t *testing.T) {
		identity := seedUser(t, factory)
		resp, err := svc.SubmitContact(ctx, identity, &dto.ContactRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Second report.",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusNew, resp.Status)
	})

	// The first missing required field in declaration order is the one
	// reported: name, then email, then message.
	t.Run("validation order is deterministic", func(t *testing.T) {
		cases := []struct {
			req       *dto.ContactRequest
			wantField string
		}{
			{&dto.ContactRequest{}, "name"},
			{&dto.ContactRequest{Name: "Ada"}, "email"},
			{&dto.ContactRequest{Name: "Ada", Email: "not-an-email"}, "email"},
			{&dto.ContactRequest{Name: "Ada", Email: "ada@example.com"}, "message"},
		}
		for _, tc := range cases {
			_, err := svc.SubmitContact(ctx, nil, tc.req)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tc.wantField, appErr.Field)
		}
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewSubmissionService(factory, nil, testLogger{})

	t.Run("name and rating are optional", func(t *testing.T) {
		resp, err := svc.SubmitFeedback(ctx, nil, &dto.FeedbackRequest{
			Email:   "ada@example.com",
			Message: "Love the reflection prompts.",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusNew, resp.Status)
	})

	t.Run("rating outside 1-5 is rejected", func(t *testing.T) {
		rating := 6
		_, err := svc.SubmitFeedback(ctx, nil, &dto.FeedbackRequest{
			Email:   "ada@example.com",
			Message: "stars",
			Rating:  &rating,
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "rating", appErr.Field)
	})

	t.Run("validation order is email then message", func(t *testing.T) {
		_, err := svc.SubmitFeedback(ctx, nil, &dto.FeedbackRequest{})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, "email", appErr.Field)

		_, err = svc.SubmitFeedback(ctx, nil, &dto.FeedbackRequest{Email: "ada@example.com"})
		appErr, ok = apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, "message", appErr.Field)
	})
}
