package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"
	"reflecto-be/pkg/embedding"
	"reflecto-be/pkg/queue"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingPipeline(t *testing.T, factory unitofwork.RepositoryFactory) (IPublisherService, *queue.Metrics) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	metrics := queue.NewMetrics()
	publisher := NewPublisherService("EMBED_ENTRY_CONTENT", pubSub, metrics)
	consumer := NewConsumerService(pubSub, "EMBED_ENTRY_CONTENT", factory, embedding.NewLocalProvider(8), metrics, nil, testLogger{})

	require.NoError(t, consumer.Consume(context.Background()))
	return publisher, metrics
}

func countEmbeddings(t *testing.T, factory unitofwork.RepositoryFactory, entryId uuid.UUID) int64 {
	t.Helper()
	count, err := factory.NewUnitOfWork(context.Background()).
		EntryEmbeddingRepository().
		Count(context.Background(), specification.Filter("entry_id", entryId))
	require.NoError(t, err)
	return count
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestEmbeddingPipeline(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	publisher, metrics := newEmbeddingPipeline(t, factory)

	owner := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	entry := seedEntry(t, factory, owner, notebook.Id, "Long day")

	payload, err := json.Marshal(dto.EmbedEntryMessage{EntryId: entry.Id})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	waitFor(t, func() bool { return countEmbeddings(t, factory, entry.Id) > 0 })

	assert.Equal(t, int64(1), metrics.Queued())
	assert.Equal(t, int64(1), metrics.Processed())
	assert.Equal(t, int64(0), metrics.Pending())
}

func TestEmbeddingPipelineReplacesOldChunks(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	publisher, _ := newEmbeddingPipeline(t, factory)

	owner := seedUser(t, factory)
	notebook := seedNotebook(t, factory, owner, entity.NotebookPrivate)
	entry := seedEntry(t, factory, owner, notebook.Id, "Short entry")

	payload, err := json.Marshal(dto.EmbedEntryMessage{EntryId: entry.Id})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, payload))
	waitFor(t, func() bool { return countEmbeddings(t, factory, entry.Id) > 0 })
	first := countEmbeddings(t, factory, entry.Id)

	// Re-embedding the same entry replaces the old set instead of
	// appending to it.
	require.NoError(t, publisher.Publish(ctx, payload))
	time.Sleep(200 * time.Millisecond)
	waitFor(t, func() bool { return countEmbeddings(t, factory, entry.Id) == first })
}

func TestEmbeddingPipelineSkipsDeletedEntry(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	publisher, metrics := newEmbeddingPipeline(t, factory)

	// An entry deleted between enqueue and processing resolves cleanly.
	payload, err := json.Marshal(dto.EmbedEntryMessage{EntryId: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	waitFor(t, func() bool { return metrics.Processed() == 1 })
	assert.Equal(t, int64(0), metrics.Failed())
}
