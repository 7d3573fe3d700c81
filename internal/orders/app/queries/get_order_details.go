package queries

import (
	"context"
	"errors"
	"time"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// GetOrderDetailsQuery represents a request to assemble the full view of an
// order: the stored record decorated with product and payment details.
type GetOrderDetailsQuery struct {
	OrderID int64
}

// Validate ensures the query has valid parameters.
func (q GetOrderDetailsQuery) Validate() error {
	if q.OrderID <= 0 {
		return errors.New("order_id is required")
	}
	return nil
}

// OrderDetails is the assembled read-path response.
type OrderDetails struct {
	OrderID        int64                `json:"order_id"`
	Status         domain.OrderStatus   `json:"status"`
	AmountCents    int64                `json:"amount_cents"`
	OrderDate      time.Time            `json:"order_date"`
	ProductDetails ports.ProductDetails `json:"product_details"`
	PaymentDetails ports.PaymentDetails `json:"payment_details"`
}

// QueryHandler executes GetOrderDetailsQuery.
type QueryHandler interface {
	Handle(ctx context.Context, query GetOrderDetailsQuery) (*OrderDetails, error)
}

// GetOrderDetailsQueryHandler loads the order and fans out to the product
// and payment services for their views. A missing order yields a not-found
// error; detail fetch failures propagate untranslated.
type GetOrderDetailsQueryHandler struct {
	repo    ports.OrderRepository
	details ports.DetailsFetcher
}

// NewGetOrderDetailsQueryHandler constructs a GetOrderDetailsQueryHandler.
func NewGetOrderDetailsQueryHandler(repo ports.OrderRepository, details ports.DetailsFetcher) *GetOrderDetailsQueryHandler {
	return &GetOrderDetailsQueryHandler{repo: repo, details: details}
}

// Handle executes the query and assembles the order details.
func (h *GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.FindByID(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.NewOrderNotFound(query.OrderID)
		}
		return nil, err
	}

	product, err := h.details.FetchProductDetails(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	payment, err := h.details.FetchPaymentDetails(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &OrderDetails{
		OrderID:        order.ID,
		Status:         order.Status,
		AmountCents:    order.AmountCents,
		OrderDate:      order.OrderDate,
		ProductDetails: product,
		PaymentDetails: payment,
	}, nil
}
