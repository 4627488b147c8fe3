package model

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/domain/event"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/pkg/events"
)

var (
	// ErrMessageNotScored is returned when an alert is built from an unscored message.
	ErrMessageNotScored = errors.New("message has not been scored")

	// ErrAlertAlreadyAcknowledged is returned by Acknowledge on a seen alert.
	ErrAlertAlreadyAcknowledged = errors.New("alert already acknowledged")
)

// Alert is raised for a message whose tier crossed the alerting threshold.
type Alert struct {
	createdAt      time.Time
	acknowledgedAt time.Time
	tier           valueobject.RiskTier
	kindredID      string
	excerpt        string
	signals        []string
	events.EventCollector
	score     int
	id        uuid.UUID
	messageID uuid.UUID
}

// NewAlertFromMessage raises an alert for msg and records AlertRaised.
func NewAlertFromMessage(msg *Message) (*Alert, error) {
	if !msg.IsScored() {
		return nil, ErrMessageNotScored
	}

	a := &Alert{
		id:        uuid.New(),
		messageID: msg.ID(),
		kindredID: msg.KindredID(),
		excerpt:   msg.Text(),
		score:     msg.Score(),
		tier:      msg.RiskTier(),
		signals:   msg.Signals(),
		createdAt: time.Now().UTC(),
	}

	a.Record(event.NewAlertRaised(a.id, a.messageID, a.kindredID, a.excerpt, a.score, a.tier.String(), a.signals, a.createdAt))
	return a, nil
}

// ReconstructAlert rebuilds an Alert from persisted data (no events). A zero
// acknowledgedAt means the alert has not been acknowledged.
func ReconstructAlert(
	id, messageID uuid.UUID,
	kindredID, excerpt string,
	score int,
	signals []string,
	createdAt, acknowledgedAt time.Time,
) *Alert {
	if signals == nil {
		signals = make([]string, 0)
	}
	return &Alert{
		id:             id,
		messageID:      messageID,
		kindredID:      kindredID,
		excerpt:        excerpt,
		score:          score,
		tier:           valueobject.RiskTierFromScore(score),
		signals:        signals,
		createdAt:      createdAt,
		acknowledgedAt: acknowledgedAt,
	}
}

// Acknowledge marks the alert as seen and records AlertAcknowledged.
func (a *Alert) Acknowledge(now time.Time) error {
	if a.IsAcknowledged() {
		return ErrAlertAlreadyAcknowledged
	}
	a.acknowledgedAt = now.UTC()
	a.Record(event.NewAlertAcknowledged(a.id, a.kindredID, a.acknowledgedAt))
	return nil
}

func (a *Alert) ID() uuid.UUID                  { return a.id }
func (a *Alert) MessageID() uuid.UUID           { return a.messageID }
func (a *Alert) KindredID() string              { return a.kindredID }
func (a *Alert) Excerpt() string                { return a.excerpt }
func (a *Alert) Score() int                     { return a.score }
func (a *Alert) RiskTier() valueobject.RiskTier { return a.tier }
func (a *Alert) Signals() []string              { return a.signals }
func (a *Alert) CreatedAt() time.Time           { return a.createdAt }
func (a *Alert) AcknowledgedAt() time.Time      { return a.acknowledgedAt }
func (a *Alert) IsAcknowledged() bool           { return !a.acknowledgedAt.IsZero() }

// Excerpt truncates text to at most n runes, appending an ellipsis when cut.
func Excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "…"
}
