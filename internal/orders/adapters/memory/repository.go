package memory

import (
	"context"
	"sync"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and
// tests. Identifiers are assigned from a monotonically increasing sequence,
// mirroring the database-backed store.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[int64]domain.Order)}
}

// Save creates the order when its ID is zero, assigning the next identifier,
// and otherwise replaces the stored record with the same ID.
func (r *Repository) Save(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else if _, ok := r.orders[order.ID]; !ok {
		return domain.Order{}, ports.ErrNotFound
	}

	r.orders[order.ID] = order
	return order, nil
}

// FindByID fetches a single order by identifier.
func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	found := order
	return &found, nil
}
