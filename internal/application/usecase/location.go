package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// RecordLocation stores a position reported by a known device.
type RecordLocation struct {
	devices   port.DeviceRepository
	locations port.LocationRepository
}

// NewRecordLocation creates a new RecordLocation use case.
func NewRecordLocation(devices port.DeviceRepository, locations port.LocationRepository) *RecordLocation {
	return &RecordLocation{devices: devices, locations: locations}
}

// Execute returns port.ErrDeviceNotFound for an unknown device. The position
// is stored whether or not the device has tracking enabled.
func (uc *RecordLocation) Execute(ctx context.Context, req dto.RecordLocationRequest) (resp dto.LocationResponse, err error) {
	ctx, span := startSpan(ctx, "RecordLocation")
	defer func() { endSpan(span, err) }()

	if err := model.ValidateKindredID(req.KindredID); err != nil {
		return dto.LocationResponse{}, invalid(err)
	}

	coords, err := valueobject.NewCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return dto.LocationResponse{}, invalid(err)
	}

	var accuracy decimal.NullDecimal
	if req.Accuracy != nil {
		accuracy = decimal.NewNullDecimal(*req.Accuracy)
	}

	loc, err := model.NewLocation(req.KindredID, coords, accuracy)
	if err != nil {
		return dto.LocationResponse{}, invalid(err)
	}

	if _, err := uc.devices.FindByKindredID(ctx, req.KindredID); err != nil {
		return dto.LocationResponse{}, fmt.Errorf("failed to find device: %w", err)
	}

	if err := uc.locations.Save(ctx, loc); err != nil {
		return dto.LocationResponse{}, fmt.Errorf("failed to save location: %w", err)
	}

	return dto.FromLocation(loc), nil
}

// GetLatestLocation returns the most recent position of a device.
type GetLatestLocation struct {
	locations port.LocationRepository
}

// NewGetLatestLocation creates a new GetLatestLocation use case.
func NewGetLatestLocation(locations port.LocationRepository) *GetLatestLocation {
	return &GetLatestLocation{locations: locations}
}

// Execute returns port.ErrLocationNotFound when nothing was reported yet.
func (uc *GetLatestLocation) Execute(ctx context.Context, req dto.DeviceRequest) (resp dto.LocationResponse, err error) {
	ctx, span := startSpan(ctx, "GetLatestLocation")
	defer func() { endSpan(span, err) }()

	if err := model.ValidateKindredID(req.KindredID); err != nil {
		return dto.LocationResponse{}, invalid(err)
	}

	loc, err := uc.locations.Latest(ctx, req.KindredID)
	if err != nil {
		return dto.LocationResponse{}, fmt.Errorf("failed to find location: %w", err)
	}
	return dto.FromLocation(loc), nil
}
