package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordPlacementDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"product_id", cmd.ProductID,
		"quantity", cmd.Quantity,
		"amount_cents", cmd.AmountCents,
		"payment_mode", string(cmd.PaymentMode),
	)

	orderID, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to place order",
			"error", err,
			"product_id", cmd.ProductID,
		)
		return 0, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.Int64("order.product_id", cmd.ProductID),
		attribute.Int64("order.quantity", cmd.Quantity),
		attribute.Int64("order.amount_cents", cmd.AmountCents),
	)

	o.logger.InfoContext(ctx, "order placed",
		"order_id", orderID,
		"product_id", cmd.ProductID,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return orderID, nil
}
