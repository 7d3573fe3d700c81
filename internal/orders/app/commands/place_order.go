package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// PlaceOrderCommand carries the caller's request to buy a quantity of a
// product. Validity of the fields (positive quantity, non-negative amount)
// is enforced at the transport boundary, not here.
type PlaceOrderCommand struct {
	ProductID   int64
	Quantity    int64
	AmountCents int64
	PaymentMode domain.PaymentMode
}

// CommandHandler executes PlaceOrderCommand and returns the identifier of
// the created order.
type CommandHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (int64, error)
}

// PlaceOrderCommandHandler runs the place-order sequence: reserve inventory,
// persist the order as CREATED, attempt payment, then persist the terminal
// status. Payment failure is absorbed into the order's status; only an
// inventory or store failure surfaces to the caller.
type PlaceOrderCommandHandler struct {
	repo      ports.OrderRepository
	inventory ports.InventoryClient
	payments  ports.PaymentClient
	events    ports.EventBus
}

func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	inventory ports.InventoryClient,
	payments ports.PaymentClient,
	events ports.EventBus,
) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{
		repo:      repo,
		inventory: inventory,
		payments:  payments,
		events:    events,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (int64, error) {
	// Fail fast: an order for stock that could not be reserved makes no
	// sense, so nothing is persisted when the reservation fails.
	if err := h.inventory.ReduceQuantity(ctx, cmd.ProductID, cmd.Quantity); err != nil {
		return 0, fmt.Errorf("reduce quantity for product %d: %w", cmd.ProductID, err)
	}

	order := domain.Order{
		ProductID:   cmd.ProductID,
		Quantity:    cmd.Quantity,
		AmountCents: cmd.AmountCents,
		Status:      domain.StatusCreated,
		OrderDate:   time.Now().UTC(),
	}

	order, err := h.repo.Save(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	result := h.payments.DoPayment(ctx, ports.PaymentRequest{
		OrderID:     order.ID,
		AmountCents: cmd.AmountCents,
		PaymentMode: cmd.PaymentMode,
	})

	if result.Succeeded {
		order.Status = domain.StatusPlaced
	} else {
		order.Status = domain.StatusPaymentFailed
	}

	if _, err := h.repo.Save(ctx, order); err != nil {
		return 0, fmt.Errorf("update order %d status: %w", order.ID, err)
	}

	// Lifecycle events are best-effort; a publish failure never changes the
	// outcome of the placement.
	if result.Succeeded {
		_ = h.events.PublishOrderPlaced(ctx, order.ID)
	} else {
		_ = h.events.PublishPaymentFailed(ctx, order.ID, result.Reason)
	}

	return order.ID, nil
}
