package queries

import (
	"context"
	"log/slog"

	"github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableQueryHandler struct {
	handler QueryHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableQueryHandler(handler QueryHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableQueryHandler {
	return &ObservableQueryHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (*OrderDetails, error) {
	ctx, span := telemetry.StartSpan(ctx, "GetOrderDetailsQuery.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.Int64("order.id", query.OrderID))

	details, err := o.handler.Handle(ctx, query)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.metrics.RecordDetailsRequest(ctx, false)
		o.logger.WarnContext(ctx, "failed to fetch order details",
			"error", err,
			"order_id", query.OrderID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.String("order.status", string(details.Status)))
	telemetry.SetSpanSuccess(span)
	o.metrics.RecordDetailsRequest(ctx, true)

	return details, nil
}
