package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/pkg/events"
)

// ErrInvalidRequest wraps every input validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// DefaultPageSize is the page size used when a request does not set one.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var tracer = otel.Tracer("github.com/vigileye/vigil/internal/application/usecase")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// normalizePage clamps a 1-based page and page size and returns the offset.
func normalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, (page - 1) * size
}

func publish(ctx context.Context, publisher port.EventPublisher, evts []events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordScore(context.Context, int, valueobject.RiskTier) {}
func (nopMetrics) RecordAlert(context.Context, valueobject.RiskTier)      {}
