package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnsupportedPlan     = errors.New("unsupported subscription plan")
	ErrUnsupportedProvider = errors.New("unsupported ai provider")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrMissingSignature    = errors.New("missing webhook signature")
	ErrInvalidTransition   = errors.New("order status cannot move backwards")
	ErrServiceUnavailable  = errors.New("payment service temporarily unavailable")
	ErrOperationFailed     = errors.New("operation failed")
	ErrPermissionDenied    = errors.New("permission denied")
)
