package domain

import "errors"

// Validation errors are surfaced to the caller as rejected operations and
// never mutate state. ErrNotFound on get/delete is a normal negative result.
var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrNotFound          = errors.New("not found")
)
