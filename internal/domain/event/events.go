package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/pkg/events"
)

const (
	// EventTypeMessageScored is emitted for every analyzed message.
	EventTypeMessageScored = "vigil.message.scored"

	// EventTypeAlertRaised is emitted when a message scores at or above the
	// alert tier.
	EventTypeAlertRaised = "vigil.alert.raised"

	// EventTypeAlertAcknowledged is emitted when a parent acknowledges an alert.
	EventTypeAlertAcknowledged = "vigil.alert.acknowledged"
)

const (
	AggregateTypeMessage = "message"
	AggregateTypeAlert   = "alert"
)

// MessageScored is published after a message has been scored and stored.
type MessageScored struct {
	ScoredAt time.Time `json:"scored_at"`
	events.BaseEvent
	KindredID string    `json:"kindred_id"`
	RiskLevel string    `json:"risk_level"`
	Signals   []string  `json:"flagged_keywords"`
	Score     int       `json:"score"`
	MessageID uuid.UUID `json:"message_id"`
}

// NewMessageScored builds a MessageScored event.
func NewMessageScored(messageID uuid.UUID, kindredID string, score int, riskLevel string, signals []string, scoredAt time.Time) MessageScored {
	return MessageScored{
		BaseEvent: events.NewBaseEvent(EventTypeMessageScored, messageID, AggregateTypeMessage),
		MessageID: messageID,
		KindredID: kindredID,
		Score:     score,
		RiskLevel: riskLevel,
		Signals:   signals,
		ScoredAt:  scoredAt,
	}
}

// AlertRaised is published when a risky message produces an alert. It is the
// trigger for parent notifications.
type AlertRaised struct {
	RaisedAt time.Time `json:"raised_at"`
	events.BaseEvent
	KindredID string    `json:"kindred_id"`
	Excerpt   string    `json:"excerpt"`
	RiskLevel string    `json:"risk_level"`
	Signals   []string  `json:"flagged_keywords"`
	Score     int       `json:"score"`
	AlertID   uuid.UUID `json:"alert_id"`
	MessageID uuid.UUID `json:"message_id"`
}

// NewAlertRaised builds an AlertRaised event.
func NewAlertRaised(alertID, messageID uuid.UUID, kindredID, excerpt string, score int, riskLevel string, signals []string, raisedAt time.Time) AlertRaised {
	return AlertRaised{
		BaseEvent: events.NewBaseEvent(EventTypeAlertRaised, alertID, AggregateTypeAlert),
		AlertID:   alertID,
		MessageID: messageID,
		KindredID: kindredID,
		Excerpt:   excerpt,
		Score:     score,
		RiskLevel: riskLevel,
		Signals:   signals,
		RaisedAt:  raisedAt,
	}
}

// AlertAcknowledged is published when an alert is marked as seen.
type AlertAcknowledged struct {
	AcknowledgedAt time.Time `json:"acknowledged_at"`
	events.BaseEvent
	KindredID string    `json:"kindred_id"`
	AlertID   uuid.UUID `json:"alert_id"`
}

// NewAlertAcknowledged builds an AlertAcknowledged event.
func NewAlertAcknowledged(alertID uuid.UUID, kindredID string, at time.Time) AlertAcknowledged {
	return AlertAcknowledged{
		BaseEvent:      events.NewBaseEvent(EventTypeAlertAcknowledged, alertID, AggregateTypeAlert),
		AlertID:        alertID,
		KindredID:      kindredID,
		AcknowledgedAt: at,
	}
}
