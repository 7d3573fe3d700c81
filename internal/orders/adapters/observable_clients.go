package adapters

import (
	"context"

	"github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableInventoryClient wraps an InventoryClient with tracing and a
// failure counter.
type ObservableInventoryClient struct {
	client  ports.InventoryClient
	metrics *metrics.Metrics
}

func NewObservableInventoryClient(client ports.InventoryClient, metrics *metrics.Metrics) *ObservableInventoryClient {
	return &ObservableInventoryClient{
		client:  client,
		metrics: metrics,
	}
}

func (c *ObservableInventoryClient) ReduceQuantity(ctx context.Context, productID, quantity int64) error {
	ctx, span := telemetry.StartSpan(ctx, "InventoryClient.ReduceQuantity")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("product.id", productID),
		attribute.Int64("product.quantity", quantity),
	)

	err := c.client.ReduceQuantity(ctx, productID, quantity)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		c.metrics.RecordInventoryFailure(ctx)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

// ObservablePaymentClient wraps a PaymentClient with tracing and an outcome
// counter. A failed result is recorded on the span as an event, not an
// error: payment failure is an expected outcome, not a fault of this call.
type ObservablePaymentClient struct {
	client  ports.PaymentClient
	metrics *metrics.Metrics
}

func NewObservablePaymentClient(client ports.PaymentClient, metrics *metrics.Metrics) *ObservablePaymentClient {
	return &ObservablePaymentClient{
		client:  client,
		metrics: metrics,
	}
}

func (c *ObservablePaymentClient) DoPayment(ctx context.Context, req ports.PaymentRequest) ports.PaymentResult {
	ctx, span := telemetry.StartSpan(ctx, "PaymentClient.DoPayment")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", req.OrderID),
		attribute.Int64("payment.amount_cents", req.AmountCents),
		attribute.String("payment.mode", string(req.PaymentMode)),
	)

	result := c.client.DoPayment(ctx, req)
	c.metrics.RecordPaymentOutcome(ctx, result.Succeeded)

	if result.Succeeded {
		telemetry.SetSpanSuccess(span)
	} else {
		telemetry.AddSpanEvent(span, "payment.failed", attribute.String("reason", result.Reason))
	}

	return result
}
