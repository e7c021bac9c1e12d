package services

import "errors"

// Sentinel errors services return so handlers can pick the right HTTP status
// with errors.Is instead of matching message strings.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateSlug      = errors.New("category slug already exists")
	ErrCategoryNotEmpty   = errors.New("category has products and cannot be deleted")
	ErrUnknownProduct     = errors.New("some products not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInvalidStatus      = errors.New("invalid order status")
)
