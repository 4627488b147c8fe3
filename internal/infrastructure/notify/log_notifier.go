// Package notify delivers parent notifications.
package notify

import (
	"context"
	"log/slog"

	"github.com/vigileye/vigil/internal/domain/port"
)

// LogNotifier implements port.Notifier by writing notifications to the log.
// It stands in for a push provider.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n.
func (n *LogNotifier) Notify(ctx context.Context, notification port.Notification) error {
	n.logger.InfoContext(ctx, "parent notification",
		slog.String("alert_id", notification.AlertID.String()),
		slog.String("kindred_id", notification.KindredID),
		slog.String("title", notification.Title),
		slog.String("body", notification.Body),
	)
	return nil
}
