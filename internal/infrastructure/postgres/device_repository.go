package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
)

// DeviceRepository implements port.DeviceRepository using PostgreSQL.
type DeviceRepository struct {
	db DB
}

// NewDeviceRepository creates a new PostgreSQL-backed device repository.
func NewDeviceRepository(db DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const selectDevice = `
	SELECT kindred_id, owner_parent_id, last_heartbeat, location_tracking_enabled, created_at
	FROM devices
	WHERE kindred_id = $1
`

// GetOrCreate returns the device, inserting it first when it is new.
func (r *DeviceRepository) GetOrCreate(ctx context.Context, kindredID, ownerParentID string) (*model.Device, error) {
	fresh, err := model.NewDevice(kindredID, ownerParentID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO devices (kindred_id, owner_parent_id, last_heartbeat, location_tracking_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kindred_id) DO NOTHING
	`,
		fresh.KindredID(),
		fresh.OwnerParentID(),
		fresh.LastHeartbeat(),
		fresh.LocationTrackingEnabled(),
		fresh.CreatedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert device: %w", err)
	}

	return r.FindByKindredID(ctx, kindredID)
}

// FindByKindredID retrieves a device by its kindred ID.
func (r *DeviceRepository) FindByKindredID(ctx context.Context, kindredID string) (*model.Device, error) {
	var (
		id               string
		owner            string
		lastHeartbeat    time.Time
		locationTracking bool
		createdAt        time.Time
	)

	err := r.db.QueryRow(ctx, selectDevice, kindredID).Scan(&id, &owner, &lastHeartbeat, &locationTracking, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to scan device: %w", err)
	}

	return model.ReconstructDevice(id, owner, lastHeartbeat, locationTracking, createdAt), nil
}

// Save updates the mutable fields of an existing device.
func (r *DeviceRepository) Save(ctx context.Context, device *model.Device) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE devices
		SET owner_parent_id = $2, last_heartbeat = $3, location_tracking_enabled = $4
		WHERE kindred_id = $1
	`,
		device.KindredID(),
		device.OwnerParentID(),
		device.LastHeartbeat(),
		device.LocationTrackingEnabled(),
	)
	if err != nil {
		return fmt.Errorf("failed to save device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrDeviceNotFound
	}
	return nil
}

// Delete removes a device. Messages, alerts and locations go with it via
// ON DELETE CASCADE.
func (r *DeviceRepository) Delete(ctx context.Context, kindredID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM devices WHERE kindred_id = $1`, kindredID)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrDeviceNotFound
	}
	return nil
}
