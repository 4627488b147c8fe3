package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestScoreRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := NewScoreRecorder(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	rec.RecordScore(ctx, 10, valueobject.RiskTierHigh)
	rec.RecordScore(ctx, 1, valueobject.RiskTierLow)
	rec.RecordScore(ctx, 8, valueobject.RiskTierHigh)
	rec.RecordAlert(ctx, valueobject.RiskTierHigh)

	data := collect(t, reader)

	scored, ok := data["vigil_messages_scored"].(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range scored.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
	assert.Len(t, scored.DataPoints, 2)

	hist, ok := data["vigil_message_score"].(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)

	alerts, ok := data["vigil_alerts_raised"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, alerts.DataPoints, 1)
	assert.Equal(t, int64(1), alerts.DataPoints[0].Value)
}
