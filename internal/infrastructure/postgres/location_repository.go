package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// LocationRepository implements port.LocationRepository using PostgreSQL.
type LocationRepository struct {
	db DB
}

// NewLocationRepository creates a new PostgreSQL-backed location repository.
func NewLocationRepository(db DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Save inserts a location report.
func (r *LocationRepository) Save(ctx context.Context, loc *model.Location) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO locations (id, kindred_id, latitude, longitude, accuracy_m, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		loc.ID(),
		loc.KindredID(),
		loc.Coordinates().Latitude(),
		loc.Coordinates().Longitude(),
		loc.Accuracy(),
		loc.RecordedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// Latest returns the newest location of a device.
func (r *LocationRepository) Latest(ctx context.Context, kindredID string) (*model.Location, error) {
	var (
		id         uuid.UUID
		kid        string
		lat        decimal.Decimal
		lng        decimal.Decimal
		accuracy   decimal.NullDecimal
		recordedAt time.Time
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, kindred_id, latitude, longitude, accuracy_m, recorded_at
		FROM locations
		WHERE kindred_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, kindredID).Scan(&id, &kid, &lat, &lng, &accuracy, &recordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to scan location: %w", err)
	}

	coords, err := valueobject.NewCoordinates(lat, lng)
	if err != nil {
		return nil, fmt.Errorf("stored location is invalid: %w", err)
	}

	return model.ReconstructLocation(id, kid, coords, accuracy, recordedAt), nil
}
