package app

import (
	"context"
	"log/slog"

	"github.com/dvukoje/ordersvc/internal/orders/app/commands"
	"github.com/dvukoje/ordersvc/internal/orders/app/queries"
	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// Service bundles the order use cases exposed to the API: placing an order
// and assembling its detail view. Collaborators are supplied at construction
// time; the service holds no state of its own.
type Service struct {
	placeOrderHandler   commands.CommandHandler
	orderDetailsHandler queries.QueryHandler
	idemStore           ports.IdempotencyStore
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	inventory ports.InventoryClient,
	payments ports.PaymentClient,
	events ports.EventBus,
	details ports.DetailsFetcher,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	placeHandler := commands.NewPlaceOrderCommandHandler(repo, inventory, payments, events)
	detailsHandler := queries.NewGetOrderDetailsQueryHandler(repo, details)

	return &Service{
		placeOrderHandler:   commands.NewObservableCommandHandler(placeHandler, logger, metrics),
		orderDetailsHandler: queries.NewObservableQueryHandler(detailsHandler, logger, metrics),
		idemStore:           idem,
	}
}

// PlaceOrderInput captures the payload for placing an order.
type PlaceOrderInput struct {
	ProductID   int64  `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	AmountCents int64  `json:"amount_cents"`
	PaymentMode string `json:"payment_mode"`
}

// PlaceOrder runs the place-order workflow and returns the order identifier.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (int64, error) {
	cmd := commands.PlaceOrderCommand{
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		AmountCents: input.AmountCents,
		PaymentMode: domain.PaymentMode(input.PaymentMode),
	}
	return s.placeOrderHandler.Handle(ctx, cmd)
}

// GetOrderDetails assembles the full order view for an existing order.
func (s *Service) GetOrderDetails(ctx context.Context, orderID int64) (*queries.OrderDetails, error) {
	return s.orderDetailsHandler.Handle(ctx, queries.GetOrderDetailsQuery{OrderID: orderID})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
