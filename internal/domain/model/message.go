package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/domain/event"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/pkg/events"
)

// Message is a chat message captured on a device, together with its risk score.
type Message struct {
	sentAt    time.Time
	tier      valueobject.RiskTier
	kindredID string
	text      string
	signals   []string
	events.EventCollector
	score  int
	scored bool
	id     uuid.UUID
}

// NewMessage creates an unscored message. Call ApplyScore to score it.
func NewMessage(kindredID, text string) (*Message, error) {
	if err := ValidateKindredID(kindredID); err != nil {
		return nil, err
	}

	return &Message{
		id:        uuid.New(),
		kindredID: kindredID,
		text:      text,
		tier:      valueobject.RiskTierSafe,
		signals:   make([]string, 0),
		sentAt:    time.Now().UTC(),
	}, nil
}

// ApplyScore records the scorer's verdict and raises MessageScored. The tier
// is always derived from the score.
func (m *Message) ApplyScore(score int, signals []string) error {
	if score < 0 {
		return fmt.Errorf("score must be non-negative, got %d", score)
	}
	if signals == nil {
		signals = make([]string, 0)
	}

	m.score = score
	m.signals = signals
	m.tier = valueobject.RiskTierFromScore(score)
	m.scored = true

	m.Record(event.NewMessageScored(m.id, m.kindredID, m.score, m.tier.String(), m.signals, m.sentAt))
	return nil
}

// ReconstructMessage rebuilds a Message from persisted data (no events).
func ReconstructMessage(id uuid.UUID, kindredID, text string, score int, signals []string, sentAt time.Time) *Message {
	if signals == nil {
		signals = make([]string, 0)
	}
	return &Message{
		id:        id,
		kindredID: kindredID,
		text:      text,
		score:     score,
		tier:      valueobject.RiskTierFromScore(score),
		signals:   signals,
		sentAt:    sentAt,
		scored:    true,
	}
}

func (m *Message) ID() uuid.UUID                  { return m.id }
func (m *Message) KindredID() string              { return m.kindredID }
func (m *Message) Text() string                   { return m.text }
func (m *Message) Score() int                     { return m.score }
func (m *Message) RiskTier() valueobject.RiskTier { return m.tier }
func (m *Message) Signals() []string              { return m.signals }
func (m *Message) SentAt() time.Time              { return m.sentAt }
func (m *Message) IsScored() bool                 { return m.scored }
