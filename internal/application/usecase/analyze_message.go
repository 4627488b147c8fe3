package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/service"
	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// AnalyzeMessage scores a message from a device, stores it and raises an
// alert when its tier reaches the configured minimum.
type AnalyzeMessage struct {
	devices   port.DeviceRepository
	messages  port.MessageRepository
	publisher port.EventPublisher
	scorer    service.Scorer
	metrics   port.ScoreMetrics
	minTier   valueobject.RiskTier
}

// NewAnalyzeMessage creates a new AnalyzeMessage use case. A zero minTier
// alerts on high only; metrics may be nil.
func NewAnalyzeMessage(
	devices port.DeviceRepository,
	messages port.MessageRepository,
	publisher port.EventPublisher,
	scorer service.Scorer,
	metrics port.ScoreMetrics,
	minTier valueobject.RiskTier,
) *AnalyzeMessage {
	if minTier.IsZero() {
		minTier = valueobject.RiskTierHigh
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &AnalyzeMessage{
		devices:   devices,
		messages:  messages,
		publisher: publisher,
		scorer:    scorer,
		metrics:   metrics,
		minTier:   minTier,
	}
}

// Execute runs the analysis.
func (uc *AnalyzeMessage) Execute(ctx context.Context, req dto.AnalyzeMessageRequest) (resp dto.AnalyzeMessageResponse, err error) {
	ctx, span := startSpan(ctx, "AnalyzeMessage")
	defer func() { endSpan(span, err) }()

	msg, err := model.NewMessage(req.KindredID, req.Text)
	if err != nil {
		return dto.AnalyzeMessageResponse{}, invalid(err)
	}

	result := uc.scorer.Score(req.Text)
	if err := msg.ApplyScore(result.Score, result.Signals); err != nil {
		return dto.AnalyzeMessageResponse{}, fmt.Errorf("failed to apply score: %w", err)
	}

	if _, err := uc.devices.GetOrCreate(ctx, req.KindredID, model.DefaultOwnerParentID); err != nil {
		return dto.AnalyzeMessageResponse{}, fmt.Errorf("failed to load device: %w", err)
	}

	var alert *model.Alert
	if msg.RiskTier().AtLeast(uc.minTier) {
		alert, err = model.NewAlertFromMessage(msg)
		if err != nil {
			return dto.AnalyzeMessageResponse{}, fmt.Errorf("failed to create alert: %w", err)
		}
	}

	if err := uc.messages.SaveWithAlert(ctx, msg, alert); err != nil {
		return dto.AnalyzeMessageResponse{}, fmt.Errorf("failed to save message: %w", err)
	}
	uc.metrics.RecordScore(ctx, msg.Score(), msg.RiskTier())

	resp = dto.AnalyzeMessageResponse{
		MessageID:       msg.ID(),
		Score:           msg.Score(),
		FlaggedKeywords: msg.Signals(),
		RiskLevel:       msg.RiskTier().String(),
	}

	pending := msg.ClearEvents()

	if alert != nil {
		uc.metrics.RecordAlert(ctx, alert.RiskTier())

		id := alert.ID()
		resp.AlertID = &id
		pending = append(pending, alert.ClearEvents()...)
	}

	span.SetAttributes(
		attribute.Int("vigil.score", resp.Score),
		attribute.String("vigil.risk_level", resp.RiskLevel),
		attribute.Bool("vigil.alert", resp.AlertID != nil),
	)

	if err := publish(ctx, uc.publisher, pending); err != nil {
		return dto.AnalyzeMessageResponse{}, err
	}

	return resp, nil
}
