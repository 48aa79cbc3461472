package store

import "errors"

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrSlugTaken     = errors.New("store slug already taken")
	ErrForbidden     = errors.New("forbidden: store belongs to another seller")

	PgUniqueViolation = "23505"
)

// ValidationError is returned for input the caller can fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
