package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyReference     = errors.New("order reference is required")
	ErrForbidden          = errors.New("forbidden: order belongs to another store")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrReferenceExhausted = errors.New("could not generate a unique order reference")

	// ErrInsufficientStock is returned by DecrementStock when the guarded
	// update touched no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

const NotFoundMessage = "Order not found. Please check your reference code."

// ValidationError rejects an order before or during checkout. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
