package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, ":8090", cfg.GRPCAddress())
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "vigil.events", cfg.KafkaEventsTopic)
	assert.Equal(t, "vigil-notifier", cfg.KafkaConsumerGroup)
	assert.Equal(t, valueobject.RiskTierHigh, cfg.AlertTier())
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.AuthEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("ALERT_MIN_TIER", "medium")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_SASL_USERNAME", "svc")
	t.Setenv("KAFKA_SASL_MECHANISM", "scram-sha-512")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("HTTP_RATE_LIMIT", "50")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":7000", cfg.HTTPAddress())
	assert.Equal(t, valueobject.RiskTierMedium, cfg.AlertTier())
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.HTTPRateLimit)

	k := cfg.Kafka()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, k.Brokers)
	assert.True(t, k.TLS)
	assert.True(t, k.SASLEnabled)
	assert.Equal(t, "SCRAM-SHA-512", k.SASLMechanism)

	lc := cfg.Log("vigild")
	assert.Equal(t, "text", lc.Format)
	assert.Equal(t, "vigild", lc.Service)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("KAFKA_TLS", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("HTTP_RATE_LIMIT", "lots")

	cfg := Load()
	assert.False(t, cfg.KafkaTLS)
	assert.Zero(t, cfg.HTTPRateLimit)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown tier", func(c *Config) { c.AlertMinTier = "critical" }, "ALERT_MIN_TIER"},
		{"cert without key", func(c *Config) { c.TLSCertFile = "cert.pem" }, "TLS_CERT_FILE"},
		{"negative rate limit", func(c *Config) { c.HTTPRateLimit = -1 }, "HTTP_RATE_LIMIT"},
		{"brokers without topic", func(c *Config) { c.KafkaBrokers = "k:9092"; c.KafkaEventsTopic = "" }, "KAFKA_EVENTS_TOPIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
