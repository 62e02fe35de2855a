package consumer

import (
	"context"
	"encoding/json"

	"hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotifications drains the notifications topic and hands each
// event to the delivery stub. Undecodable messages are committed and
// dropped; delivery here is a structured log, the real channel (mail,
// chat) sits behind the same shape.
func ConsumeNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")
		if err := deliver(eventType, msg.Value, log); err != nil {
			log.Error("decode notification failed",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func deliver(eventType string, payload []byte, log *zap.Logger) error {
	switch eventType {
	case events.TypeEmployeeTypeChanged:
		var e events.EmployeeTypeChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering employee type change notification",
			zap.Int("recipients", len(e.Employees)),
			zap.String("employee_type", e.EmployeeType),
		)
	case events.TypeDesignationChanged:
		var e events.DesignationChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering designation change notification",
			zap.Int("recipients", len(e.Employees)),
			zap.String("designation", e.Designation),
		)
	case events.TypeGradeChanged:
		var e events.GradeChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering grade change notification",
			zap.Int("recipients", len(e.Employees)),
			zap.String("grade", e.Grade),
		)
	case events.TypeShiftChanged:
		var e events.ShiftChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering shift change notification",
			zap.Int("recipients", len(e.HrmsIDs)),
			zap.String("shift_type", e.ShiftType),
		)
	case events.TypeBusinessGroupChanged:
		var e events.BusinessGroupChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering business group change notification",
			zap.Int("recipients", len(e.HrmsIDs)),
			zap.String("business_group", e.BusinessGroup),
		)
	case events.TypeDirectManagerChanged:
		var e events.DirectManagerChanged
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		log.Info("delivering direct manager change notification",
			zap.Int("recipients", len(e.Employees)),
			zap.String("direct_manager", e.DirectManager),
		)
	default:
		log.Warn("unknown notification event type", zap.String("event_type", eventType))
	}
	return nil
}
