package domain

import (
	"errors"
	"time"
)

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	// StatusCreated is the initial status, set after inventory has been
	// reserved but before payment is attempted.
	StatusCreated OrderStatus = "CREATED"
	// StatusPlaced is the terminal status of a successfully paid order.
	StatusPlaced OrderStatus = "PLACED"
	// StatusPaymentFailed is the terminal status of an order whose payment
	// attempt failed for any reason.
	StatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
)

// PaymentMode enumerates the supported ways of paying for an order.
type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "CASH"
	PaymentModeCreditCard PaymentMode = "CREDIT_CARD"
	PaymentModeDebitCard  PaymentMode = "DEBIT_CARD"
	PaymentModePaypal     PaymentMode = "PAYPAL"
	PaymentModeApplePay   PaymentMode = "APPLE_PAY"
)

// Order represents the durable record of one purchase attempt.
// The identifier is assigned by the order store on first save; everything
// except Status is immutable after creation.
type Order struct {
	ID          int64       `json:"id"`
	ProductID   int64       `json:"product_id"`
	Quantity    int64       `json:"quantity"`
	AmountCents int64       `json:"amount_cents"`
	Status      OrderStatus `json:"status"`
	OrderDate   time.Time   `json:"order_date"`
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if o.ProductID <= 0 {
		return errors.New("product_id is required")
	}
	if o.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if o.AmountCents < 0 {
		return errors.New("amount_cents must not be negative")
	}
	switch o.Status {
	case StatusCreated, StatusPlaced, StatusPaymentFailed:
	default:
		return errors.New("status must be one of CREATED, PLACED, PAYMENT_FAILED")
	}
	return nil
}

// IsTerminal indicates whether the order is in a terminal state.
func (o Order) IsTerminal() bool {
	switch o.Status {
	case StatusPlaced, StatusPaymentFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving to the given status is a legal
// forward transition. Terminal states never transition again.
func (o Order) CanTransitionTo(next OrderStatus) bool {
	if o.IsTerminal() {
		return false
	}
	switch next {
	case StatusPlaced, StatusPaymentFailed:
		return o.Status == StatusCreated
	default:
		return false
	}
}
