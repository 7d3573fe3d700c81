package adapters

import (
	"context"
	"time"

	"github.com/dvukoje/ordersvc/internal/database"
	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Save")
	defer span.End()

	operation := "create_order"
	if order.ID != 0 {
		operation = "update_order"
	}
	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", order.ID),
		attribute.String("order.status", string(order.Status)),
		attribute.String("operation", operation),
	)

	start := time.Now()
	saved, err := r.repo.Save(ctx, order)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, operation, duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Order{}, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int64("order.assigned_id", saved.ID))
	telemetry.SetSpanSuccess(span)
	return saved, nil
}

func (r *ObservableRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", id),
		attribute.String("operation", "find_order_by_id"),
	)

	start := time.Now()
	order, err := r.repo.FindByID(ctx, id)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "find_order_by_id", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}
