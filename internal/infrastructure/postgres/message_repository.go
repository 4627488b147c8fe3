package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vigileye/vigil/internal/domain/model"
	pkgpostgres "github.com/vigileye/vigil/pkg/postgres"
)

// MessageRepository implements port.MessageRepository using PostgreSQL.
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a new PostgreSQL-backed message repository.
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Save persists a scored message and its signals in one transaction.
func (r *MessageRepository) Save(ctx context.Context, msg *model.Message) error {
	return r.SaveWithAlert(ctx, msg, nil)
}

// SaveWithAlert persists a scored message and, when alert is non-nil, its
// alert in the same transaction.
func (r *MessageRepository) SaveWithAlert(ctx context.Context, msg *model.Message, alert *model.Alert) error {
	return pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO messages (id, kindred_id, text, score, risk_level, sent_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			msg.ID(),
			msg.KindredID(),
			msg.Text(),
			msg.Score(),
			msg.RiskTier().String(),
			msg.SentAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}

		if err := insertSignals(ctx, tx, "message_signals", "message_id", msg.ID(), msg.Signals()); err != nil {
			return err
		}

		if alert == nil {
			return nil
		}
		return saveAlert(ctx, tx, alert)
	})
}

// ListByDevice returns a device's messages, newest first.
func (r *MessageRepository) ListByDevice(ctx context.Context, kindredID string, limit, offset int) ([]*model.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.kindred_id, m.text, m.score, m.sent_at,
			COALESCE(array_agg(s.signal ORDER BY s.position) FILTER (WHERE s.signal IS NOT NULL), '{}')
		FROM messages m
		LEFT JOIN message_signals s ON s.message_id = m.id
		WHERE m.kindred_id = $1
		GROUP BY m.id
		ORDER BY m.sent_at DESC
		LIMIT $2 OFFSET $3
	`, kindredID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var (
			id      uuid.UUID
			kid     string
			text    string
			score   int
			sentAt  time.Time
			signals []string
		)
		if err := rows.Scan(&id, &kid, &text, &score, &sentAt, &signals); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, model.ReconstructMessage(id, kid, text, score, signals, sentAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

// insertSignals writes ordered signal rows for a parent record.
func insertSignals(ctx context.Context, q pkgpostgres.Querier, table, fk string, parentID uuid.UUID, signals []string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, position, signal) VALUES ($1, $2, $3)`, table, fk)
	for i, signal := range signals {
		if _, err := q.Exec(ctx, query, parentID, i, signal); err != nil {
			return fmt.Errorf("failed to save signal: %w", err)
		}
	}
	return nil
}
