// Command vigild serves message risk scoring over HTTP and gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vigileye/vigil/internal/application/usecase"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/service"
	"github.com/vigileye/vigil/internal/infrastructure/config"
	infrakafka "github.com/vigileye/vigil/internal/infrastructure/kafka"
	"github.com/vigileye/vigil/internal/infrastructure/messaging"
	"github.com/vigileye/vigil/internal/infrastructure/metrics"
	infrapg "github.com/vigileye/vigil/internal/infrastructure/postgres"
	"github.com/vigileye/vigil/internal/infrastructure/rules"
	grpcpresentation "github.com/vigileye/vigil/internal/presentation/grpc"
	"github.com/vigileye/vigil/internal/presentation/rest"
	"github.com/vigileye/vigil/pkg/auth"
	pkgkafka "github.com/vigileye/vigil/pkg/kafka"
	"github.com/vigileye/vigil/pkg/observability"
	"github.com/vigileye/vigil/pkg/postgres"
)

func main() {
	cfg := config.Load()
	logger := observability.InitLogger(cfg.Log("vigild"))

	if err := run(cfg, logger); err != nil {
		logger.Error("vigild exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting vigild", "environment", cfg.Environment)

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "vigild",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(flushCtx); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewScoreRecorder(meterProvider.Meter("github.com/vigileye/vigil"))
	if err != nil {
		return err
	}

	// Rules.
	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	scorer := service.NewRiskScorer(ruleSet)
	logger.Info("rules loaded", "path", cfg.RulesPath, "rules", ruleSet.Len())

	// Database.
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}
	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	pool, err := postgres.NewPool(connectCtx, postgres.Config{URL: cfg.DatabaseURL})
	cancelConnect()
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database")

	devices := infrapg.NewDeviceRepository(pool)
	messages := infrapg.NewMessageRepository(pool)
	alerts := infrapg.NewAlertRepository(pool)
	locations := infrapg.NewLocationRepository(pool)

	// Events.
	var publisher port.EventPublisher
	if cfg.KafkaEnabled() {
		producer := pkgkafka.NewProducer(cfg.Kafka())
		defer func() { _ = producer.Close() }()
		publisher = infrakafka.NewPublisher(producer, cfg.KafkaEventsTopic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.KafkaEventsTopic)
	} else {
		publisher = messaging.NewLogPublisher(logger)
		logger.Info("no kafka brokers configured, logging events")
	}

	jwtService, err := newJWTService(cfg)
	if err != nil {
		return err
	}

	// Use cases.
	scoreText := usecase.NewScoreText(scorer, recorder)
	analyze := usecase.NewAnalyzeMessage(devices, messages, publisher, scorer, recorder, cfg.AlertTier())

	// HTTP.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, pool).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	var guard func(http.Handler) http.Handler
	if jwtService != nil {
		authenticate := auth.HTTPMiddleware(jwtService, nil)
		guard = func(next http.Handler) http.Handler {
			return authenticate(auth.RequireRoles(next, auth.RoleParent, auth.RoleAdmin))
		}
	}
	rest.NewHandler(rest.UseCases{
		Analyze:        analyze,
		Score:          scoreText,
		Heartbeat:      usecase.NewRecordHeartbeat(devices),
		Reset:          usecase.NewResetDevice(devices),
		Messages:       usecase.NewListDeviceMessages(devices, messages),
		RecordLocation: usecase.NewRecordLocation(devices, locations),
		LatestLocation: usecase.NewGetLatestLocation(locations),
		ListAlerts:     usecase.NewListAlerts(alerts),
		AckAlert:       usecase.NewAcknowledgeAlert(alerts, publisher),
	}, logger).RegisterRoutes(mux, guard)

	var limiter *rest.RateLimiter
	if cfg.HTTPRateLimit > 0 {
		limiter = rest.NewRateLimiter(cfg.HTTPRateLimit)
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.Chain(mux,
			rest.RecoverMiddleware(logger),
			rest.LoggingMiddleware(logger),
			rest.RateLimitMiddleware(limiter),
		),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// gRPC.
	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewRiskServiceHandler(scoreText, analyze, logger, jwtService != nil),
		grpcpresentation.ServerConfig{
			JWT:         jwtService,
			Address:     cfg.GRPCAddress(),
			TLSCertFile: cfg.TLSCertFile,
			TLSKeyFile:  cfg.TLSKeyFile,
			Reflection:  cfg.Environment == "development",
		},
		logger,
	)
	if err != nil {
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rules.WatchReload(gctx, hup, cfg.RulesPath, scorer, logger)
		return nil
	})

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down vigild")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		grpcServer.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	})

	logger.Info("vigild started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"alert_min_tier", cfg.AlertTier().String(),
	)

	err = g.Wait()
	logger.Info("vigild stopped")
	return err
}

func newJWTService(cfg *config.Config) (*auth.JWTService, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
	}
	if cfg.JWTPublicKeyPath != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyPath)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = pem
	}
	return auth.NewJWTService(jwtCfg)
}
