package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.transport != nil {
		t.Error("expected default transport when TLS and SASL are disabled")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerWithTLSAndSASL(t *testing.T) {
	p := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "PLAIN",
		SASLUsername:  "vigil",
		SASLPassword:  "secret",
	})
	if p.transport == nil {
		t.Fatal("expected custom transport")
	}
	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL == nil {
		t.Error("expected SASL mechanism on transport")
	}

	w := p.getOrCreateWriter("vigil.events")
	if w.Transport != p.transport {
		t.Error("expected writer to use the producer transport")
	}
}

func TestPublishWithoutMessagesIsNoop(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	if err := p.Publish(context.Background(), "vigil.events"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected no writer to be created, got %d", len(p.writers))
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("topic-a")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	w2 := p.getOrCreateWriter("topic-a")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("topic-b")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestSplitBrokers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "list with spaces", raw: " a:9092 , b:9092 ", want: []string{"a:9092", "b:9092"}},
		{name: "blank entries dropped", raw: "a:9092,,", want: []string{"a:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitBrokers(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitBrokers(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitBrokers(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSASLMechanismSelection(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectNil bool
	}{
		{name: "disabled", cfg: Config{SASLMechanism: "PLAIN"}, expectNil: true},
		{name: "plain", cfg: Config{SASLEnabled: true, SASLMechanism: "PLAIN"}},
		{name: "default plain", cfg: Config{SASLEnabled: true}},
		{name: "scram 256", cfg: Config{SASLEnabled: true, SASLMechanism: "SCRAM-SHA-256", SASLUsername: "u", SASLPassword: "p"}},
		{name: "scram 512", cfg: Config{SASLEnabled: true, SASLMechanism: "SCRAM-SHA-512", SASLUsername: "u", SASLPassword: "p"}},
		{name: "unknown", cfg: Config{SASLEnabled: true, SASLMechanism: "GSSAPI"}, expectNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.cfg.saslMechanism()
			if tt.expectNil && m != nil {
				t.Errorf("expected nil mechanism, got %s", m.Name())
			}
			if !tt.expectNil && m == nil {
				t.Error("expected a mechanism, got nil")
			}
		})
	}
}

func TestFromKafkaMessage(t *testing.T) {
	msg := fromKafkaMessage(kafkago.Message{
		Topic: "vigil.events",
		Key:   []byte("device-1"),
		Value: []byte(`{"score":7}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("vigil.alert.raised")},
		},
	})

	if msg.Topic != "vigil.events" {
		t.Errorf("unexpected topic %q", msg.Topic)
	}
	if string(msg.Key) != "device-1" {
		t.Errorf("unexpected key %q", msg.Key)
	}
	if msg.Headers["event_type"] != "vigil.alert.raised" {
		t.Errorf("unexpected event_type header %q", msg.Headers["event_type"])
	}
}
