package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoStore         = errors.New("you must have a store to add products")
	ErrForbidden       = errors.New("forbidden: product belongs to another seller")
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
