// Package metrics exports scoring outcomes as OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// ScoreRecorder implements port.ScoreMetrics.
type ScoreRecorder struct {
	scored metric.Int64Counter
	scores metric.Int64Histogram
	alerts metric.Int64Counter
}

// NewScoreRecorder registers the scoring instruments on meter.
func NewScoreRecorder(meter metric.Meter) (*ScoreRecorder, error) {
	scored, err := meter.Int64Counter("vigil_messages_scored",
		metric.WithDescription("Messages scored, by risk level."))
	if err != nil {
		return nil, fmt.Errorf("create scored counter: %w", err)
	}

	scores, err := meter.Int64Histogram("vigil_message_score",
		metric.WithDescription("Distribution of message risk scores."),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 7, 10, 15, 25))
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	alerts, err := meter.Int64Counter("vigil_alerts_raised",
		metric.WithDescription("Alerts raised, by risk level."))
	if err != nil {
		return nil, fmt.Errorf("create alert counter: %w", err)
	}

	return &ScoreRecorder{scored: scored, scores: scores, alerts: alerts}, nil
}

// RecordScore counts a scored message.
func (r *ScoreRecorder) RecordScore(ctx context.Context, score int, tier valueobject.RiskTier) {
	attrs := metric.WithAttributes(attribute.String("risk_level", tier.String()))
	r.scored.Add(ctx, 1, attrs)
	r.scores.Record(ctx, int64(score), attrs)
}

// RecordAlert counts a raised alert.
func (r *ScoreRecorder) RecordAlert(ctx context.Context, tier valueobject.RiskTier) {
	r.alerts.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", tier.String())))
}
