package domain

import "errors"

var (
	ErrInvalidAmount   = errors.New("payment amount must be positive")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrForbidden       = errors.New("resource belongs to another tenant")
	ErrInvoiceVoid     = errors.New("cannot record payment against a void invoice")
	ErrInvoicePaid     = errors.New("invoice is already fully paid")
)
