// Command notifierd consumes vigil events and notifies parents of alerts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vigileye/vigil/internal/application/usecase"
	"github.com/vigileye/vigil/internal/infrastructure/config"
	infrakafka "github.com/vigileye/vigil/internal/infrastructure/kafka"
	"github.com/vigileye/vigil/internal/infrastructure/notify"
	pkgkafka "github.com/vigileye/vigil/pkg/kafka"
	"github.com/vigileye/vigil/pkg/observability"
)

func main() {
	cfg := config.Load()
	logger := observability.InitLogger(cfg.Log("notifierd"))

	if err := run(cfg, logger); err != nil {
		logger.Error("notifierd exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifyAlert := usecase.NewNotifyAlert(notify.NewLogNotifier(logger))

	consumer := pkgkafka.NewConsumer(
		cfg.Kafka(),
		cfg.KafkaEventsTopic,
		infrakafka.NewAlertRaisedHandler(notifyAlert, logger),
		logger,
	)
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Warn("consumer close failed", "error", err)
		}
	}()

	logger.Info("notifierd started",
		"topic", cfg.KafkaEventsTopic,
		"group", cfg.KafkaConsumerGroup,
	)

	if err := consumer.Start(ctx); err != nil {
		return err
	}
	logger.Info("notifierd stopped")
	return nil
}
