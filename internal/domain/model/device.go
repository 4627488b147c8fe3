package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultOwnerParentID owns devices that register themselves before a parent
// account claims them.
const DefaultOwnerParentID = "default_parent"

const maxKindredIDLength = 128

// ErrKindredIDRequired is returned when a device identifier is missing.
var ErrKindredIDRequired = errors.New("kindred ID is required")

// DeriveKindredID returns the lowercase hex SHA-256 digest of seed, the
// identifier devices use to enrol.
func DeriveKindredID(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// ValidateKindredID checks a device identifier supplied by a client.
func ValidateKindredID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrKindredIDRequired
	}
	if len(id) > maxKindredIDLength {
		return fmt.Errorf("kindred ID exceeds %d characters", maxKindredIDLength)
	}
	return nil
}

// Device is a monitored child device.
type Device struct {
	createdAt               time.Time
	lastHeartbeat           time.Time
	kindredID               string
	ownerParentID           string
	locationTrackingEnabled bool
}

// NewDevice creates a device owned by ownerParentID. An empty owner falls
// back to DefaultOwnerParentID.
func NewDevice(kindredID, ownerParentID string) (*Device, error) {
	if err := ValidateKindredID(kindredID); err != nil {
		return nil, err
	}
	if ownerParentID == "" {
		ownerParentID = DefaultOwnerParentID
	}

	now := time.Now().UTC()
	return &Device{
		kindredID:     kindredID,
		ownerParentID: ownerParentID,
		lastHeartbeat: now,
		createdAt:     now,
	}, nil
}

// ReconstructDevice rebuilds a Device from persisted data.
func ReconstructDevice(kindredID, ownerParentID string, lastHeartbeat time.Time, locationTracking bool, createdAt time.Time) *Device {
	return &Device{
		kindredID:               kindredID,
		ownerParentID:           ownerParentID,
		lastHeartbeat:           lastHeartbeat,
		locationTrackingEnabled: locationTracking,
		createdAt:               createdAt,
	}
}

// Heartbeat records that the device checked in at now.
func (d *Device) Heartbeat(now time.Time) {
	d.lastHeartbeat = now.UTC()
}

// SetLocationTracking toggles location tracking for the device.
func (d *Device) SetLocationTracking(enabled bool) {
	d.locationTrackingEnabled = enabled
}

func (d *Device) KindredID() string             { return d.kindredID }
func (d *Device) OwnerParentID() string         { return d.ownerParentID }
func (d *Device) LastHeartbeat() time.Time      { return d.lastHeartbeat }
func (d *Device) LocationTrackingEnabled() bool { return d.locationTrackingEnabled }
func (d *Device) CreatedAt() time.Time          { return d.createdAt }
