package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/service"
)

// ScoreText scores text without storing anything.
type ScoreText struct {
	scorer  service.Scorer
	metrics port.ScoreMetrics
}

// NewScoreText creates a new ScoreText use case. metrics may be nil.
func NewScoreText(scorer service.Scorer, metrics port.ScoreMetrics) *ScoreText {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ScoreText{scorer: scorer, metrics: metrics}
}

// Execute scores req.Text. It never fails.
func (uc *ScoreText) Execute(ctx context.Context, req dto.ScoreRequest) dto.ScoreResponse {
	ctx, span := startSpan(ctx, "ScoreText")
	defer span.End()

	result := uc.scorer.Score(req.Text)
	uc.metrics.RecordScore(ctx, result.Score, result.Tier)

	span.SetAttributes(
		attribute.Int("vigil.score", result.Score),
		attribute.String("vigil.risk_level", result.Tier.String()),
	)
	return dto.FromScoreResult(result)
}
