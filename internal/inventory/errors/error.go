// Package errors provides the sentinel errors of the inventory service.
package errors

import "errors"

var (
	ErrProductNotFound           = errors.New("product not found")
	ErrProductServiceUnavailable = errors.New("product service unavailable")
	ErrCircuitOpen               = errors.New("product service circuit breaker is open")
	ErrNegativeQuantity          = errors.New("quantity must not be negative")
)
