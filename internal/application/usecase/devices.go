package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
)

// RecordHeartbeat refreshes a device's last check-in time.
type RecordHeartbeat struct {
	devices port.DeviceRepository
	now     func() time.Time
}

// NewRecordHeartbeat creates a new RecordHeartbeat use case.
func NewRecordHeartbeat(devices port.DeviceRepository) *RecordHeartbeat {
	return &RecordHeartbeat{devices: devices, now: time.Now}
}

// Execute returns port.ErrDeviceNotFound for an unknown device.
func (uc *RecordHeartbeat) Execute(ctx context.Context, req dto.DeviceRequest) (resp dto.DeviceResponse, err error) {
	ctx, span := startSpan(ctx, "RecordHeartbeat")
	defer func() { endSpan(span, err) }()

	if err := model.ValidateKindredID(req.KindredID); err != nil {
		return dto.DeviceResponse{}, invalid(err)
	}

	device, err := uc.devices.FindByKindredID(ctx, req.KindredID)
	if err != nil {
		return dto.DeviceResponse{}, fmt.Errorf("failed to find device: %w", err)
	}

	device.Heartbeat(uc.now())
	if err := uc.devices.Save(ctx, device); err != nil {
		return dto.DeviceResponse{}, fmt.Errorf("failed to save device: %w", err)
	}

	return dto.FromDevice(device), nil
}

// ResetDevice removes a device together with its messages, alerts and
// locations.
type ResetDevice struct {
	devices port.DeviceRepository
}

// NewResetDevice creates a new ResetDevice use case.
func NewResetDevice(devices port.DeviceRepository) *ResetDevice {
	return &ResetDevice{devices: devices}
}

// Execute returns port.ErrDeviceNotFound for an unknown device.
func (uc *ResetDevice) Execute(ctx context.Context, req dto.DeviceRequest) (err error) {
	ctx, span := startSpan(ctx, "ResetDevice")
	defer func() { endSpan(span, err) }()

	if err := model.ValidateKindredID(req.KindredID); err != nil {
		return invalid(err)
	}

	if err := uc.devices.Delete(ctx, req.KindredID); err != nil {
		return fmt.Errorf("failed to reset device: %w", err)
	}
	return nil
}

// ListDeviceMessages pages through a device's stored messages, newest first.
type ListDeviceMessages struct {
	devices  port.DeviceRepository
	messages port.MessageRepository
}

// NewListDeviceMessages creates a new ListDeviceMessages use case.
func NewListDeviceMessages(devices port.DeviceRepository, messages port.MessageRepository) *ListDeviceMessages {
	return &ListDeviceMessages{devices: devices, messages: messages}
}

// Execute returns port.ErrDeviceNotFound for an unknown device.
func (uc *ListDeviceMessages) Execute(ctx context.Context, req dto.ListMessagesRequest) (resp dto.ListMessagesResponse, err error) {
	ctx, span := startSpan(ctx, "ListDeviceMessages")
	defer func() { endSpan(span, err) }()

	if err := model.ValidateKindredID(req.KindredID); err != nil {
		return dto.ListMessagesResponse{}, invalid(err)
	}
	if _, err := uc.devices.FindByKindredID(ctx, req.KindredID); err != nil {
		return dto.ListMessagesResponse{}, fmt.Errorf("failed to find device: %w", err)
	}

	page, size, offset := normalizePage(req.Page, req.PageSize)
	msgs, err := uc.messages.ListByDevice(ctx, req.KindredID, size, offset)
	if err != nil {
		return dto.ListMessagesResponse{}, fmt.Errorf("failed to list messages: %w", err)
	}

	resp = dto.ListMessagesResponse{
		Messages: make([]dto.MessageResponse, 0, len(msgs)),
		Page:     page,
		PageSize: size,
	}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, dto.FromMessage(m))
	}
	return resp, nil
}
