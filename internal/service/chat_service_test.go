package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/pkg/assistant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T) (IChatService, *entity.Identity) {
	t.Helper()
	factory := newTestFactory(t)
	svc := NewChatService(factory, assistant.NewTemplateProvider("Daksha"), "Daksha", nil, testLogger{})
	return svc, seedUser(t, factory)
}

func TestChatSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewChatService(factory, assistant.NewTemplateProvider("Daksha"), "Daksha", nil, testLogger{})
	owner := seedUser(t, factory)

	created, err := svc.CreateSession(ctx, owner)
	require.NoError(t, err)

	archived, err := svc.ArchiveSession(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChatSessionArchived), archived.Status)
	require.NotNil(t, archived.ArchivedAt)

	// Archiving twice is a no-op; the original timestamp survives.
	again, err := svc.ArchiveSession(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChatSessionArchived), again.Status)
	require.NotNil(t, again.ArchivedAt)
	assert.WithinDuration(t, *archived.ArchivedAt, *again.ArchivedAt, time.Second)

	restored, err := svc.RestoreSession(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChatSessionActive), restored.Status)
	assert.Nil(t, restored.ArchivedAt)

	// Restoring an active session succeeds without changing anything.
	restored, err = svc.RestoreSession(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChatSessionActive), restored.Status)
}

func TestChatSessionOwnershipGates(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewChatService(factory, assistant.NewTemplateProvider("Daksha"), "Daksha", nil, testLogger{})
	owner := seedUser(t, factory)
	stranger := seedUser(t, factory)
	session := seedSession(t, factory, owner, entity.ChatSessionActive)

	t.Run("nil identity is unauthenticated", func(t *testing.T) {
		_, err := svc.ArchiveSession(ctx, nil, session.Id)
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	})

	t.Run("non-owner sees not found, never forbidden", func(t *testing.T) {
		_, err := svc.ArchiveSession(ctx, stranger, session.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		_, err = svc.GetMessages(ctx, stranger, session.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		err = svc.DeleteSession(ctx, stranger, session.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("absent session is not found", func(t *testing.T) {
		_, err := svc.ArchiveSession(ctx, owner, uuid.New())
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("owner still has the session", func(t *testing.T) {
		sessions, err := svc.GetSessions(ctx, owner, "")
		require.NoError(t, err)
		assert.Len(t, sessions, 1)
	})
}

func TestChatSendMessage(t *testing.T) {
	ctx := context.Background()
	svc, owner := newChatService(t)

	created, err := svc.CreateSession(ctx, owner)
	require.NoError(t, err)

	resp, err := svc.SendMessage(ctx, owner, created.Id, &dto.SendMessageRequest{
		Content: "Today I finally finished the garden fence.",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ChatRoleUser, resp.UserMessage.Role)
	assert.Equal(t, entity.ChatRoleAssistant, resp.Reply.Role)
	assert.NotEmpty(t, resp.Reply.Content)

	// The first exchange names the session after the opening message.
	assert.Equal(t, "Today I finally finished the garden fence.", resp.SessionTitle)

	// Later exchanges leave the title alone.
	resp, err = svc.SendMessage(ctx, owner, created.Id, &dto.SendMessageRequest{
		Content: "It took all weekend.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Today I finally finished the garden fence.", resp.SessionTitle)

	messages, err := svc.GetMessages(ctx, owner, created.Id)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, entity.ChatRoleUser, messages[0].Role)
	assert.Equal(t, entity.ChatRoleAssistant, messages[1].Role)
}

func TestChatSendMessageLongTitleTruncates(t *testing.T) {
	ctx := context.Background()
	svc, owner := newChatService(t)

	created, err := svc.CreateSession(ctx, owner)
	require.NoError(t, err)

	long := strings.Repeat("a", 80)
	resp, err := svc.SendMessage(ctx, owner, created.Id, &dto.SendMessageRequest{Content: long})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 60)+"...", resp.SessionTitle)
}

func TestChatSendMessageRejections(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewChatService(factory, assistant.NewTemplateProvider("Daksha"), "Daksha", nil, testLogger{})
	owner := seedUser(t, factory)

	t.Run("archived session rejects new messages", func(t *testing.T) {
		session := seedSession(t, factory, owner, entity.ChatSessionArchived)

		_, err := svc.SendMessage(ctx, owner, session.Id, &dto.SendMessageRequest{Content: "hello?"})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "session_id", appErr.Field)
	})

	t.Run("blank content is a validation error", func(t *testing.T) {
		session := seedSession(t, factory, owner, entity.ChatSessionActive)

		_, err := svc.SendMessage(ctx, owner, session.Id, &dto.SendMessageRequest{Content: "   "})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "content", appErr.Field)
	})
}

func TestChatGetSessionsStatusFilter(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	svc := NewChatService(factory, assistant.NewTemplateProvider("Daksha"), "Daksha", nil, testLogger{})
	owner := seedUser(t, factory)

	seedSession(t, factory, owner, entity.ChatSessionActive)
	seedSession(t, factory, owner, entity.ChatSessionArchived)

	active, err := svc.GetSessions(ctx, owner, string(entity.ChatSessionActive))
	require.NoError(t, err)
	assert.Len(t, active, 1)

	archived, err := svc.GetSessions(ctx, owner, string(entity.ChatSessionArchived))
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	all, err := svc.GetSessions(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetSessions(ctx, owner, "deleted")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestChatDeleteSessionRemovesMessages(t *testing.T) {
	ctx := context.Background()
	svc, owner := newChatService(t)

	created, err := svc.CreateSession(ctx, owner)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, owner, created.Id, &dto.SendMessageRequest{Content: "keep this?"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, owner, created.Id))

	_, err = svc.GetMessages(ctx, owner, created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
