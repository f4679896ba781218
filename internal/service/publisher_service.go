package service

import (
	"context"
	"encoding/json"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}

// ISideEffectDispatcher hands post-commit work to the background worker.
// Dispatch never fails the caller.
type ISideEffectDispatcher interface {
	Dispatch(ctx context.Context, msg dto.SideEffectMessage)
}

type sideEffectDispatcher struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewSideEffectDispatcher(publisher IPublisherService, logger logger.ILogger) ISideEffectDispatcher {
	return &sideEffectDispatcher{
		publisher: publisher,
		logger:    logger,
	}
}

func (d *sideEffectDispatcher) Dispatch(ctx context.Context, msg dto.SideEffectMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		d.logger.Error("DISPATCH", "Failed to encode side effect", map[string]interface{}{
			"event": msg.Event,
			"error": err.Error(),
		})
		return
	}

	// The request context ends with the response; the worker must not inherit it.
	if err := d.publisher.Publish(context.WithoutCancel(ctx), payload); err != nil {
		d.logger.Error("DISPATCH", "Failed to queue side effect", map[string]interface{}{
			"event": msg.Event,
			"error": err.Error(),
		})
	}
}
