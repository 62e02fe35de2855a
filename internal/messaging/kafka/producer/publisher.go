package producer

import (
	"context"

	"hrms/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Messages are keyed by event type so every designation_changed (etc.)
// lands on the same partition in order.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.EventType),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
