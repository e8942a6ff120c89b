package service

import (
	"context"
	"encoding/json"

	"notes-api/internal/pkg/logger"
	"notes-api/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder relays activity to an external bus. *nats.Publisher satisfies it.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	activityLogger logger.ILogger
	forwarder      EventForwarder
	logger         logger.ILogger
}

// NewConsumerService wires the activity consumer. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	activityLogger logger.ILogger,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		activityLogger: activityLogger,
		forwarder:      forwarder,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	// Malformed activity is dropped; redelivery would not fix it.
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Warn("ActivityConsumer", "Dropping malformed activity message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := make(map[string]interface{}, len(event.Data)+1)
	for k, v := range event.Data {
		details[k] = v
	}
	details["occurred_at"] = event.OccurredAt

	cs.activityLogger.Info("activity", event.Type, details)

	if cs.forwarder == nil {
		return
	}
	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Warn("ActivityConsumer", "Failed to forward activity event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
