package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"
	"reflecto-be/pkg/embedding"
	"reflecto-be/pkg/events"
	pktNats "reflecto-be/pkg/nats"
	"reflecto-be/pkg/queue"
	"reflecto-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunk sizing: ~1500 chars per chunk with 200 chars of overlap keeps
// each chunk well inside embedding model context limits.
const (
	embedChunkSize    = 1500
	embedChunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	metrics           *queue.Metrics
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	metrics *queue.Metrics,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		metrics:           metrics,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedEntryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		cs.metrics.MarkFailed()
		msg.Ack() // malformed payloads never succeed on retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.EntryRepository().FindOne(ctx, specification.ByID{ID: payload.EntryId})
	if err != nil {
		cs.logger.Error("Consumer", "Failed to load entry", map[string]interface{}{
			"entry_id": payload.EntryId, "error": err.Error(),
		})
		cs.metrics.MarkFailed()
		msg.Nack()
		return
	}
	if entry == nil {
		// Entry deleted between enqueue and processing.
		cs.metrics.MarkProcessed()
		msg.Ack()
		return
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: entry.NotebookId})
	if err != nil {
		cs.metrics.MarkFailed()
		msg.Nack()
		return
	}
	notebookTitle := "Unknown"
	if notebook != nil {
		notebookTitle = notebook.Title
	}

	entryUpdatedAt := "-"
	if entry.UpdatedAt != nil {
		entryUpdatedAt = entry.UpdatedAt.Format(time.RFC3339)
	}

	content := fmt.Sprintf(`Entry Title: %s
Notebook Title: %s

%s

Created At: %s
Updated At: %s`,
		entry.Title,
		notebookTitle,
		entry.Content,
		entry.CreatedAt.Format(time.RFC3339),
		entryUpdatedAt,
	)

	chunks := utils.SplitText(content, embedChunkSize, embedChunkOverlap)

	var newEmbeddings []*entity.EntryEmbedding
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("Consumer", "Failed to generate embedding", map[string]interface{}{
				"entry_id": payload.EntryId, "chunk": i, "error": err.Error(),
			})
			cs.metrics.MarkFailed()
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.EntryEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			EntryId:        entry.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	// Replace-all inside one transaction: readers never see a half set.
	if err := uow.Begin(ctx); err != nil {
		cs.metrics.MarkFailed()
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.EntryEmbeddingRepository().DeleteByEntryId(ctx, entry.Id); err != nil {
		cs.metrics.MarkFailed()
		msg.Nack()
		return
	}
	if len(newEmbeddings) > 0 {
		if err := uow.EntryEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			cs.metrics.MarkFailed()
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.metrics.MarkFailed()
		msg.Nack()
		return
	}

	cs.metrics.MarkProcessed()
	cs.logger.Info("Consumer", "Entry embedded", map[string]interface{}{
		"entry_id": entry.Id,
		"chunks":   len(newEmbeddings),
	})

	if cs.eventPublisher != nil {
		event := events.New(events.TypeEntryEmbedded, map[string]interface{}{
			"user_id":  entry.UserId,
			"entry_id": entry.Id,
			"chunks":   len(newEmbeddings),
		})
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			cs.logger.Warn("Consumer", "Failed to publish event", map[string]interface{}{
				"type":  events.TypeEntryEmbedded,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
