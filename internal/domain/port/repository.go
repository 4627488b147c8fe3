package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/pkg/events"
)

var (
	// ErrDeviceNotFound is returned when no device has the given kindred ID.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrAlertNotFound is returned when no alert has the given ID.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrLocationNotFound is returned when a device has reported no location.
	ErrLocationNotFound = errors.New("location not found")
)

// DeviceRepository defines the persistence port for devices.
type DeviceRepository interface {
	// GetOrCreate returns the device with the given kindred ID, creating it
	// with ownerParentID when it does not exist yet.
	GetOrCreate(ctx context.Context, kindredID, ownerParentID string) (*model.Device, error)

	// FindByKindredID returns ErrDeviceNotFound for an unknown device.
	FindByKindredID(ctx context.Context, kindredID string) (*model.Device, error)

	// Save updates an existing device.
	Save(ctx context.Context, device *model.Device) error

	// Delete removes a device and every record that belongs to it.
	Delete(ctx context.Context, kindredID string) error
}

// MessageRepository defines the persistence port for scored messages.
type MessageRepository interface {
	Save(ctx context.Context, msg *model.Message) error

	// SaveWithAlert persists msg and, when alert is non-nil, the alert raised
	// for it. Either both are stored or neither is.
	SaveWithAlert(ctx context.Context, msg *model.Message, alert *model.Alert) error

	ListByDevice(ctx context.Context, kindredID string, limit, offset int) ([]*model.Message, error)
}

// AlertFilter selects alerts for listing. An empty Tiers matches every tier.
type AlertFilter struct {
	Tiers  []valueobject.RiskTier
	Limit  int
	Offset int
}

// Matches reports whether an alert of the given tier passes the filter.
func (f AlertFilter) Matches(tier valueobject.RiskTier) bool {
	if len(f.Tiers) == 0 {
		return true
	}
	for _, t := range f.Tiers {
		if t.Equal(tier) {
			return true
		}
	}
	return false
}

// AlertRepository defines the persistence port for alerts.
type AlertRepository interface {
	Save(ctx context.Context, alert *model.Alert) error

	// FindByID returns ErrAlertNotFound for an unknown alert.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)

	// List returns matching alerts newest first, and the total match count.
	List(ctx context.Context, filter AlertFilter) ([]*model.Alert, int, error)
}

// LocationRepository defines the persistence port for device locations.
type LocationRepository interface {
	Save(ctx context.Context, loc *model.Location) error

	// Latest returns ErrLocationNotFound when the device has no location.
	Latest(ctx context.Context, kindredID string) (*model.Location, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// Notification is a human-readable message delivered to a parent.
type Notification struct {
	KindredID string
	Title     string
	Body      string
	AlertID   uuid.UUID
}

// Notifier delivers notifications to parents.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ScoreMetrics records scoring outcomes.
type ScoreMetrics interface {
	RecordScore(ctx context.Context, score int, tier valueobject.RiskTier)
	RecordAlert(ctx context.Context, tier valueobject.RiskTier)
}
