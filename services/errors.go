package services

import "errors"

// Domain errors mapped to HTTP statuses at the controller edge.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBannerNotFound     = errors.New("banner not found")
	ErrNotOrderOwner      = errors.New("order belongs to another customer")
	ErrRetryNotAllowed    = errors.New("payment retry not allowed for this order")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrSignatureInvalid   = errors.New("payment signature verification failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
