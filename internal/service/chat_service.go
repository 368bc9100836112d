package service

import (
	"context"
	"strings"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/owned"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"reflecto-be/pkg/assistant"
	"reflecto-be/pkg/events"
	pktNats "reflecto-be/pkg/nats"

	"github.com/google/uuid"
)

const defaultSessionTitle = "New reflection"

// Number of prior messages handed to the assistant as context.
const chatHistoryWindow = 20

type IChatService interface {
	GetSessions(ctx context.Context, identity *entity.Identity, status string) ([]*dto.SessionResponse, error)
	CreateSession(ctx context.Context, identity *entity.Identity) (*dto.CreateSessionResponse, error)
	ArchiveSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.SessionResponse, error)
	RestoreSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
	GetMessages(ctx context.Context, identity *entity.Identity, sessionId uuid.UUID) ([]*dto.ChatMessageDTO, error)
	SendMessage(ctx context.Context, identity *entity.Identity, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	assistantProvider assistant.Provider
	assistantName     string
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	assistantProvider assistant.Provider,
	assistantName string,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		assistantProvider: assistantProvider,
		assistantName:     assistantName,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func chatSessionRepo(uow unitofwork.UnitOfWork) owned.Repository[*entity.ChatSession] {
	return uow.ChatSessionRepository()
}

func (s *chatService) GetSessions(ctx context.Context, identity *entity.Identity, status string) ([]*dto.SessionResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: identity.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		if status != string(entity.ChatSessionActive) && status != string(entity.ChatSessionArchived) {
			return nil, apperror.Validation("status")
		}
		specs = append(specs, specification.BySessionStatus{Status: status})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}
	return result, nil
}

func (s *chatService) CreateSession(ctx context.Context, identity *entity.Identity) (*dto.CreateSessionResponse, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    identity.Id,
		Title:     defaultSessionTitle,
		Status:    entity.ChatSessionActive,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

// ArchiveSession is idempotent: archiving an archived session succeeds
// without touching ArchivedAt.
func (s *chatService) ArchiveSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := owned.Mutate(ctx, uow, identity, id, "chat session", chatSessionRepo,
		func(cs *entity.ChatSession) error {
			if cs.Status == entity.ChatSessionArchived {
				return nil
			}
			now := time.Now()
			cs.Status = entity.ChatSessionArchived
			cs.ArchivedAt = &now
			cs.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// RestoreSession is idempotent: restoring an active session is a no-op.
func (s *chatService) RestoreSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := owned.Mutate(ctx, uow, identity, id, "chat session", chatSessionRepo,
		func(cs *entity.ChatSession) error {
			if cs.Status == entity.ChatSessionActive {
				return nil
			}
			now := time.Now()
			cs.Status = entity.ChatSessionActive
			cs.ArchivedAt = nil
			cs.UpdatedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *chatService) DeleteSession(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if identity == nil {
		return apperror.Unauthenticated()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if session == nil || session.Owner() != identity.Id {
		return apperror.NotFound("chat session")
	}

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (s *chatService) GetMessages(ctx context.Context, identity *entity.Identity, sessionId uuid.UUID) ([]*dto.ChatMessageDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := owned.Fetch(ctx, uow, identity, sessionId, "chat session", chatSessionRepo); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	result := make([]*dto.ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toChatMessageDTO(msg))
	}
	return result, nil
}

func (s *chatService) SendMessage(ctx context.Context, identity *entity.Identity, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := owned.Fetch(ctx, uow, identity, sessionId, "chat session", chatSessionRepo)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.ChatSessionArchived {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "chat session is archived", Field: "session_id"}
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("content")
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	assistantHistory := make([]assistant.Message, 0, len(history)+1)
	start := 0
	if len(history) > chatHistoryWindow {
		start = len(history) - chatHistoryWindow
	}
	for _, msg := range history[start:] {
		assistantHistory = append(assistantHistory, assistant.Message{Role: msg.Role, Content: msg.Content})
	}
	assistantHistory = append(assistantHistory, assistant.Message{Role: entity.ChatRoleUser, Content: content})

	reply, err := s.assistantProvider.Chat(ctx, assistantHistory)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          entity.ChatRoleUser,
		Content:       content,
		CreatedAt:     time.Now(),
	}
	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          entity.ChatRoleAssistant,
		Content:       reply,
		Metadata: map[string]interface{}{
			"assistant": s.assistantName,
		},
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	// The first exchange names the session after the opening message.
	if len(history) == 0 && session.Title == defaultSessionTitle {
		session.Title = sessionTitleFrom(content)
		now := time.Now()
		session.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return nil, apperror.StoreUnavailable(err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	if s.eventPublisher != nil {
		event := events.New(events.TypeAssistantReplied, map[string]interface{}{
			"user_id":    identity.Id,
			"session_id": sessionId,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Chat", "Failed to publish event", map[string]interface{}{
				"type":  events.TypeAssistantReplied,
				"error": err.Error(),
			})
		}
	}

	return &dto.SendMessageResponse{
		SessionId:    sessionId,
		SessionTitle: session.Title,
		UserMessage:  *toChatMessageDTO(userMessage),
		Reply:        *toChatMessageDTO(assistantMessage),
	}, nil
}

func sessionTitleFrom(content string) string {
	runes := []rune(content)
	if len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return content
}

func toSessionResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:         s.Id,
		Title:      s.Title,
		Status:     string(s.Status),
		ArchivedAt: s.ArchivedAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toChatMessageDTO(m *entity.ChatMessage) *dto.ChatMessageDTO {
	return &dto.ChatMessageDTO{
		Id:        m.Id,
		Role:      m.Role,
		Content:   m.Content,
		Metadata:  m.Metadata,
		CreatedAt: m.CreatedAt,
	}
}
