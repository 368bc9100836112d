package service

import (
	"context"

	"reflecto-be/pkg/queue"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService enqueues embedding jobs on the in-process bus.
type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	metrics   *queue.Metrics
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, metrics *queue.Metrics) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		metrics:   metrics,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return err
	}
	s.metrics.MarkQueued()
	return nil
}
