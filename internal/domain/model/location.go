package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// Location is a position reported by a device.
type Location struct {
	recordedAt time.Time
	kindredID  string
	coords     valueobject.Coordinates
	accuracy   decimal.NullDecimal
	id         uuid.UUID
}

// NewLocation records a position for a device. accuracy is in metres and
// optional.
func NewLocation(kindredID string, coords valueobject.Coordinates, accuracy decimal.NullDecimal) (*Location, error) {
	if err := ValidateKindredID(kindredID); err != nil {
		return nil, err
	}
	if accuracy.Valid && accuracy.Decimal.IsNegative() {
		return nil, fmt.Errorf("accuracy must be non-negative, got %s", accuracy.Decimal)
	}

	return &Location{
		id:         uuid.New(),
		kindredID:  kindredID,
		coords:     coords,
		accuracy:   accuracy,
		recordedAt: time.Now().UTC(),
	}, nil
}

// ReconstructLocation rebuilds a Location from persisted data.
func ReconstructLocation(id uuid.UUID, kindredID string, coords valueobject.Coordinates, accuracy decimal.NullDecimal, recordedAt time.Time) *Location {
	return &Location{
		id:         id,
		kindredID:  kindredID,
		coords:     coords,
		accuracy:   accuracy,
		recordedAt: recordedAt,
	}
}

func (l *Location) ID() uuid.UUID                        { return l.id }
func (l *Location) KindredID() string                    { return l.kindredID }
func (l *Location) Coordinates() valueobject.Coordinates { return l.coords }
func (l *Location) Accuracy() decimal.NullDecimal        { return l.accuracy }
func (l *Location) RecordedAt() time.Time                { return l.recordedAt }

// MapsURL links to the position on Google Maps.
func (l *Location) MapsURL() string { return l.coords.MapsURL() }
