package ports

import "context"

// EventBus defines the contract for publishing order lifecycle events.
// Publications are best-effort: the workflow logs failures and moves on.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, orderID int64) error
	PublishPaymentFailed(ctx context.Context, orderID int64, reason string) error
}
