package domain

import "errors"

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrForbidden          = errors.New("resource belongs to another tenant")
	ErrInvalidTotal       = errors.New("total amount must be positive")
	ErrInvoiceHasPayments = errors.New("invoice with payments cannot be voided")
	ErrInvoiceVoid        = errors.New("invoice is void")
)
