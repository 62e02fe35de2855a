package kafka

import (
	"context"
	"encoding/json"

	"hrms/internal/events"
	"hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier persists notification events to the outbox; the worker
// publishes them to kafka with at-least-once delivery. Enqueue failures
// are the caller's to log, never to propagate to end users.
type Notifier struct {
	repo   OutboxRepository
	logger *zap.Logger
}

func NewNotifier(repo OutboxRepository, logger ...*zap.Logger) *Notifier {
	l := zap.L().Named("kafka.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.notifier")
	}
	return &Notifier{repo: repo, logger: l}
}

func (n *Notifier) Enqueue(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := OutboxEvent{
		ID:        uuid.NewString(),
		RequestID: contextutil.GetRequestID(ctx),
		EventType: eventType,
		Topic:     events.NotificationsTopic,
		Payload:   data,
		Status:    OutboxStatusPending,
	}

	if err := n.repo.Create(ctx, event); err != nil {
		return err
	}

	n.logger.Debug("notification enqueued",
		zap.String("outbox_id", event.ID),
		zap.String("event_type", eventType),
	)
	return nil
}
