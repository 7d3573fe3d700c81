package ports

import "fmt"

// NotFoundError is the externally visible shape of a missing-order failure:
// a human-readable message, a stable machine code, and an HTTP-style status
// for the transport to map onto a response.
type NotFoundError struct {
	Message string
	Code    string
	Status  int
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewOrderNotFound builds the not-found error raised when no order exists
// for the given identifier.
func NewOrderNotFound(orderID int64) *NotFoundError {
	return &NotFoundError{
		Message: fmt.Sprintf("order not found for the order id: %d", orderID),
		Code:    "NOT_FOUND",
		Status:  404,
	}
}
