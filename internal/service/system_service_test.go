package service

import (
	"context"
	"testing"

	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingQueueStatus(t *testing.T) {
	ctx := context.Background()
	factory := newTestFactory(t)
	metrics := queue.NewMetrics()
	svc := NewSystemService(factory, metrics)
	identity := seedUser(t, factory)

	_, err := svc.EmbeddingQueueStatus(ctx, nil)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	metrics.MarkQueued()
	metrics.MarkQueued()
	metrics.MarkProcessed()

	status, err := svc.EmbeddingQueueStatus(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Queued)
	assert.Equal(t, int64(1), status.Processed)
	assert.Equal(t, int64(1), status.Pending)
	assert.Equal(t, int64(0), status.Vectors)
}
