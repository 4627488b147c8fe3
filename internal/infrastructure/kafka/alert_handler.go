package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vigileye/vigil/internal/domain/event"
	pkgkafka "github.com/vigileye/vigil/pkg/kafka"
)

// AlertNotifier handles a decoded AlertRaised event.
type AlertNotifier interface {
	Execute(ctx context.Context, evt event.AlertRaised) error
}

// NewAlertRaisedHandler returns a consumer handler that decodes
// vigil.alert.raised messages and passes them to notifier. Other event types
// are skipped and committed.
func NewAlertRaisedHandler(notifier AlertNotifier, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		eventType := msg.Headers[HeaderEventType]
		if eventType != event.EventTypeAlertRaised {
			logger.DebugContext(ctx, "skipping event", "event_type", eventType)
			return nil
		}

		var evt event.AlertRaised
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			// Poison messages are committed and dropped.
			logger.ErrorContext(ctx, "dropping undecodable alert event",
				"event_id", msg.Headers[HeaderEventID],
				"error", err,
			)
			return nil
		}

		if err := notifier.Execute(ctx, evt); err != nil {
			return fmt.Errorf("failed to notify alert %s: %w", evt.AlertID, err)
		}
		return nil
	}
}
