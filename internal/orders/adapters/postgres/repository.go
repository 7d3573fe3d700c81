package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save inserts a new order when the ID is zero, letting the database assign
// the identifier, and otherwise updates the status of the existing record.
// Fields other than status are immutable after creation.
func (r *Repository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == 0 {
		return r.insert(ctx, order)
	}
	return r.updateStatus(ctx, order)
}

func (r *Repository) insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	query := `
		INSERT INTO orders (product_id, quantity, amount_cents, status, order_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		order.ProductID,
		order.Quantity,
		order.AmountCents,
		order.Status,
		order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

func (r *Repository) updateStatus(ctx context.Context, order domain.Order) (domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, order.Status, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.Order{}, ports.ErrNotFound
	}

	return order, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, product_id, quantity, amount_cents, status, order_date
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.AmountCents,
		&order.Status,
		&order.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return &order, nil
}
