package ports

import (
	"context"
	"time"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
)

// InventoryClient reserves stock with the product service. A failure means
// the stock could not be reserved and order placement must be aborted.
type InventoryClient interface {
	ReduceQuantity(ctx context.Context, productID, quantity int64) error
}

// PaymentRequest carries everything the payment service needs to charge an
// order.
type PaymentRequest struct {
	OrderID     int64              `json:"order_id"`
	AmountCents int64              `json:"amount_cents"`
	PaymentMode domain.PaymentMode `json:"payment_mode"`
}

// PaymentResult is the outcome of a payment attempt. Implementations fold
// every failure cause (rejection, transport error, timeout) into a single
// failed result carrying an opaque reason; callers never see the underlying
// error.
type PaymentResult struct {
	Succeeded bool
	Reason    string
}

// PaymentSucceeded is the successful payment outcome.
func PaymentSucceeded() PaymentResult {
	return PaymentResult{Succeeded: true}
}

// PaymentFailed builds a failed payment outcome with the given reason.
func PaymentFailed(reason string) PaymentResult {
	return PaymentResult{Succeeded: false, Reason: reason}
}

// PaymentClient executes a monetary charge for an order.
type PaymentClient interface {
	DoPayment(ctx context.Context, req PaymentRequest) PaymentResult
}

// ProductDetails is the product view owned by the product service.
type ProductDetails struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int64  `json:"quantity"`
}

// PaymentDetails is the transaction view owned by the payment service.
type PaymentDetails struct {
	PaymentID   int64              `json:"payment_id"`
	OrderID     int64              `json:"order_id"`
	Status      string             `json:"status"`
	PaymentMode domain.PaymentMode `json:"payment_mode"`
	AmountCents int64              `json:"amount_cents"`
	PaymentDate time.Time          `json:"payment_date"`
}

// DetailsFetcher retrieves externally owned views used by the read path.
// Fetch failures are returned as-is; the read path does not translate them.
type DetailsFetcher interface {
	FetchProductDetails(ctx context.Context, productID int64) (ProductDetails, error)
	FetchPaymentDetails(ctx context.Context, orderID int64) (PaymentDetails, error)
}
