package service

import (
	"context"
	"encoding/json"

	"notes-api/internal/pkg/logger"
	"notes-api/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}

// publishActivity never fails the caller: the write it reports has already
// been committed.
func publishActivity(ctx context.Context, publisher IPublisherService, log logger.ILogger, event events.BaseEvent) {
	if publisher == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn("Activity", "Failed to marshal activity event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
		return
	}

	if err := publisher.Publish(ctx, payload); err != nil {
		log.Warn("Activity", "Failed to publish activity event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
