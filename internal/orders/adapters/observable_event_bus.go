package adapters

import (
	"context"
	"time"

	"github.com/dvukoje/ordersvc/internal/kafka"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderPlaced(ctx context.Context, orderID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderPlaced")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.String("event.type", "order.placed"),
		attribute.String("topic", "order.placed"),
	)

	start := time.Now()
	err := e.bus.PublishOrderPlaced(ctx, orderID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.placed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishPaymentFailed(ctx context.Context, orderID int64, reason string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishPaymentFailed")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.String("event.type", "order.payment_failed"),
		attribute.String("topic", "order.payment_failed"),
		attribute.String("failure.reason", reason),
	)

	start := time.Now()
	err := e.bus.PublishPaymentFailed(ctx, orderID, reason)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.payment_failed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
