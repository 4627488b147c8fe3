package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vigileye/vigil/internal/domain/event"
	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
)

// NotificationExcerptLength bounds the quoted message in a notification
// body, in runes. The alert itself keeps the full text.
const NotificationExcerptLength = 140

// NotifyAlert turns a raised alert into a parent notification.
type NotifyAlert struct {
	notifier port.Notifier
}

// NewNotifyAlert creates a new NotifyAlert use case.
func NewNotifyAlert(notifier port.Notifier) *NotifyAlert {
	return &NotifyAlert{notifier: notifier}
}

// Execute delivers a notification for evt.
func (uc *NotifyAlert) Execute(ctx context.Context, evt event.AlertRaised) (err error) {
	ctx, span := startSpan(ctx, "NotifyAlert")
	defer func() { endSpan(span, err) }()

	n := BuildNotification(evt)
	if err := uc.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// BuildNotification renders the notification text for an alert.
func BuildNotification(evt event.AlertRaised) port.Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "A %s risk message (score %d) was detected on device %s.", evt.RiskLevel, evt.Score, evt.KindredID)
	if len(evt.Signals) > 0 {
		fmt.Fprintf(&body, " Flagged: %s.", strings.Join(evt.Signals, ", "))
	}
	if evt.Excerpt != "" {
		fmt.Fprintf(&body, " Message: %q", model.Excerpt(evt.Excerpt, NotificationExcerptLength))
	}

	return port.Notification{
		AlertID:   evt.AlertID,
		KindredID: evt.KindredID,
		Title:     fmt.Sprintf("Vigil alert: %s risk", evt.RiskLevel),
		Body:      body.String(),
	}
}
