package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersPlacedTotal      metric.Int64Counter
	placementDuration      metric.Float64Histogram
	detailsRequestsTotal   metric.Int64Counter
	paymentOutcomesTotal   metric.Int64Counter
	inventoryFailuresTotal metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.ordersPlacedTotal, err = meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of place-order attempts"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_placed_total counter: %w", err)
	}

	m.placementDuration, err = meter.Float64Histogram(
		"order_placement_duration_seconds",
		metric.WithDescription("Duration of place-order operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_placement_duration histogram: %w", err)
	}

	m.detailsRequestsTotal, err = meter.Int64Counter(
		"order_details_requests_total",
		metric.WithDescription("Total number of order detail lookups"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_details_requests_total counter: %w", err)
	}

	m.paymentOutcomesTotal, err = meter.Int64Counter(
		"payment_outcomes_total",
		metric.WithDescription("Payment attempts by outcome"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment_outcomes_total counter: %w", err)
	}

	m.inventoryFailuresTotal, err = meter.Int64Counter(
		"inventory_reservation_failures_total",
		metric.WithDescription("Inventory reservations that aborted order placement"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create inventory_reservation_failures_total counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordOrderPlaced(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ordersPlacedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordPlacementDuration(ctx context.Context, durationSeconds float64) {
	m.placementDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordDetailsRequest(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.detailsRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordPaymentOutcome(ctx context.Context, succeeded bool) {
	outcome := "succeeded"
	if !succeeded {
		outcome = "failed"
	}
	m.paymentOutcomesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordInventoryFailure(ctx context.Context) {
	m.inventoryFailuresTotal.Add(ctx, 1)
}
