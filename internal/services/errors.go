package services

import "errors"

// Sentinel errors returned by the lifecycle services. Handlers translate
// these into HTTP status codes; anything else is an infrastructure fault.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrDuplicatePayment     = errors.New("duplicate payment attempt")
	ErrInvalidTransition    = errors.New("invalid status transition")
)
