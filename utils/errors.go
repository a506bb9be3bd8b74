package utils

import (
	"errors"
	"fmt"
)

// Error taxonomy for the donation API. Validation is rejected at the HTTP
// boundary before touching the database; gateway and database failures are
// translated here rather than leaking driver errors to clients.

// ErrSignatureMismatch is returned when a payment callback signature does not
// match the HMAC recomputed from the server-held secret. It maps to a 400 and
// is never silently accepted.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// FieldError is a validation failure naming the offending request field.
// Callers must receive the field, never a generic failure.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewFieldError builds a FieldError for the named field.
func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// GatewayError wraps an upstream payment-provider failure. The message is
// safe to forward to clients; secrets never appear in it.
type GatewayError struct {
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment gateway error: %s", e.Message)
	}
	return fmt.Sprintf("payment gateway error: status %d", e.Status)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// ErrInvalidAmount is returned when an order amount is below the gateway
// minimum (100 minor units).
var ErrInvalidAmount = errors.New("amount below gateway minimum")
