package user

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingSecret      = errors.New("JWT_SECRET is not set")
	ErrInvalidToken       = errors.New("invalid token")

	pgUniqueViolation = "23505"
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
