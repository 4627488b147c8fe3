package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// ListAlerts pages through alerts, newest first.
type ListAlerts struct {
	alerts port.AlertRepository
}

// NewListAlerts creates a new ListAlerts use case.
func NewListAlerts(alerts port.AlertRepository) *ListAlerts {
	return &ListAlerts{alerts: alerts}
}

// Execute lists alerts matching req. Risk is one of all, high, medium, low
// or safe; empty means all. Low covers every score below medium, safe
// included.
func (uc *ListAlerts) Execute(ctx context.Context, req dto.ListAlertsRequest) (resp dto.ListAlertsResponse, err error) {
	ctx, span := startSpan(ctx, "ListAlerts")
	defer func() { endSpan(span, err) }()

	risk := req.Risk
	if risk == "" {
		risk = "all"
	}

	tiers, err := filterTiers(risk)
	if err != nil {
		return dto.ListAlertsResponse{}, invalid(err)
	}

	page, size, offset := normalizePage(req.Page, req.PageSize)

	alerts, total, err := uc.alerts.List(ctx, port.AlertFilter{Tiers: tiers, Limit: size, Offset: offset})
	if err != nil {
		return dto.ListAlertsResponse{}, fmt.Errorf("failed to list alerts: %w", err)
	}

	resp = dto.ListAlertsResponse{
		Risk:       risk,
		Alerts:     make([]dto.AlertResponse, 0, len(alerts)),
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, dto.FromAlert(a))
	}
	return resp, nil
}

// filterTiers maps a risk filter to the tiers it selects. All selects none,
// which matches every tier.
func filterTiers(risk string) ([]valueobject.RiskTier, error) {
	if risk == "all" {
		return nil, nil
	}
	tier, err := valueobject.RiskTierFromString(risk)
	if err != nil {
		return nil, err
	}
	if tier.Equal(valueobject.RiskTierLow) {
		return []valueobject.RiskTier{valueobject.RiskTierLow, valueobject.RiskTierSafe}, nil
	}
	return []valueobject.RiskTier{tier}, nil
}

// AcknowledgeAlert marks an alert as seen.
type AcknowledgeAlert struct {
	alerts    port.AlertRepository
	publisher port.EventPublisher
	now       func() time.Time
}

// NewAcknowledgeAlert creates a new AcknowledgeAlert use case.
func NewAcknowledgeAlert(alerts port.AlertRepository, publisher port.EventPublisher) *AcknowledgeAlert {
	return &AcknowledgeAlert{alerts: alerts, publisher: publisher, now: time.Now}
}

// Execute acknowledges the alert. It returns port.ErrAlertNotFound for an
// unknown alert and model.ErrAlertAlreadyAcknowledged when already seen.
func (uc *AcknowledgeAlert) Execute(ctx context.Context, req dto.AcknowledgeAlertRequest) (resp dto.AlertResponse, err error) {
	ctx, span := startSpan(ctx, "AcknowledgeAlert")
	defer func() { endSpan(span, err) }()

	alert, err := uc.alerts.FindByID(ctx, req.AlertID)
	if err != nil {
		return dto.AlertResponse{}, fmt.Errorf("failed to find alert: %w", err)
	}

	if err := alert.Acknowledge(uc.now()); err != nil {
		return dto.AlertResponse{}, err
	}

	if err := uc.alerts.Save(ctx, alert); err != nil {
		return dto.AlertResponse{}, fmt.Errorf("failed to save alert: %w", err)
	}

	if err := publish(ctx, uc.publisher, alert.ClearEvents()); err != nil {
		return dto.AlertResponse{}, err
	}

	return dto.FromAlert(alert), nil
}
