package restclient

import (
	"context"

	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// DetailsClient assembles the DetailsFetcher contract from the two
// service-specific clients.
type DetailsClient struct {
	products *ProductClient
	payments *PaymentClient
}

func NewDetailsClient(products *ProductClient, payments *PaymentClient) *DetailsClient {
	return &DetailsClient{products: products, payments: payments}
}

func (c *DetailsClient) FetchProductDetails(ctx context.Context, productID int64) (ports.ProductDetails, error) {
	return c.products.FetchProductDetails(ctx, productID)
}

func (c *DetailsClient) FetchPaymentDetails(ctx context.Context, orderID int64) (ports.PaymentDetails, error) {
	return c.payments.FetchPaymentDetails(ctx, orderID)
}
