package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrEmptyCatalog is recoverable: callers degrade to an empty
	// recommendation list instead of failing the request.
	ErrEmptyCatalog = errors.New("no candidate products available")
)
