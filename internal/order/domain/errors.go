package domain

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrForbidden        = errors.New("resource belongs to another tenant")
	ErrEmptyOrder       = errors.New("order requires at least one item")
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidQuantity  = errors.New("item quantity must be positive")
	ErrInvalidStatus    = errors.New("invalid order status transition")
)
