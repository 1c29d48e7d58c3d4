package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("resource belongs to another tenant")
	ErrInvalidName      = errors.New("name is required")
)
