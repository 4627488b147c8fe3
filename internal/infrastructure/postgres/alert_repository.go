package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	pkgpostgres "github.com/vigileye/vigil/pkg/postgres"
)

// AlertRepository implements port.AlertRepository using PostgreSQL.
type AlertRepository struct {
	db DB
}

// NewAlertRepository creates a new PostgreSQL-backed alert repository.
func NewAlertRepository(db DB) *AlertRepository {
	return &AlertRepository{db: db}
}

const selectAlerts = `
	SELECT a.id, a.message_id, a.kindred_id, a.excerpt, a.score, a.created_at, a.acknowledged_at,
		COALESCE(array_agg(s.signal ORDER BY s.position) FILTER (WHERE s.signal IS NOT NULL), '{}')
	FROM alerts a
	LEFT JOIN alert_signals s ON s.alert_id = a.id
`

// Save upserts an alert. Signals are written only when the alert is new.
func (r *AlertRepository) Save(ctx context.Context, alert *model.Alert) error {
	return pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return saveAlert(ctx, tx, alert)
	})
}

func saveAlert(ctx context.Context, q pkgpostgres.Querier, alert *model.Alert) error {
	var ackAt *time.Time
	if alert.IsAcknowledged() {
		t := alert.AcknowledgedAt()
		ackAt = &t
	}

	var inserted bool
	err := q.QueryRow(ctx, `
		INSERT INTO alerts (id, message_id, kindred_id, excerpt, score, risk_level, created_at, acknowledged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			acknowledged_at = EXCLUDED.acknowledged_at
		RETURNING (xmax = 0)
	`,
		alert.ID(),
		alert.MessageID(),
		alert.KindredID(),
		alert.Excerpt(),
		alert.Score(),
		alert.RiskTier().String(),
		alert.CreatedAt(),
		ackAt,
	).Scan(&inserted)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}

	if !inserted {
		return nil
	}
	return insertSignals(ctx, q, "alert_signals", "alert_id", alert.ID(), alert.Signals())
}

// FindByID retrieves an alert by its unique identifier.
func (r *AlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	rows, err := r.db.Query(ctx, selectAlerts+` WHERE a.id = $1 GROUP BY a.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert: %w", err)
	}

	alert, err := pgx.CollectExactlyOneRow(rows, scanAlert)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to scan alert: %w", err)
	}
	return alert, nil
}

// List returns alerts matching filter, newest first, with the total count.
func (r *AlertRepository) List(ctx context.Context, filter port.AlertFilter) ([]*model.Alert, int, error) {
	tiers := make([]string, 0, len(filter.Tiers))
	for _, t := range filter.Tiers {
		tiers = append(tiers, t.String())
	}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM alerts WHERE (cardinality($1::text[]) = 0 OR risk_level = ANY($1))`, tiers,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	rows, err := r.db.Query(ctx, selectAlerts+`
		WHERE (cardinality($1::text[]) = 0 OR a.risk_level = ANY($1))
		GROUP BY a.id
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, tiers, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query alerts: %w", err)
	}

	alerts, err := pgx.CollectRows(rows, scanAlert)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan alert row: %w", err)
	}
	return alerts, total, nil
}

func scanAlert(row pgx.CollectableRow) (*model.Alert, error) {
	var (
		id        uuid.UUID
		messageID uuid.UUID
		kindredID string
		excerpt   string
		score     int
		createdAt time.Time
		ackAt     *time.Time
		signals   []string
	)

	if err := row.Scan(&id, &messageID, &kindredID, &excerpt, &score, &createdAt, &ackAt, &signals); err != nil {
		return nil, err
	}

	var acknowledgedAt time.Time
	if ackAt != nil {
		acknowledgedAt = *ackAt
	}

	return model.ReconstructAlert(id, messageID, kindredID, excerpt, score, signals, createdAt, acknowledgedAt), nil
}
