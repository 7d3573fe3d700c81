package ports

import (
	"context"
	"errors"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
)

// OrderRepository is the durable keyed storage for Order records. The store
// owns identity assignment: Save of an order with a zero ID creates a record
// and returns it with the assigned identifier; Save of an order with a
// non-zero ID updates the existing record in place.
type OrderRepository interface {
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)
