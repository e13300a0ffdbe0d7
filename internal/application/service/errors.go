package service

import "errors"

var (
	// ErrOrderNotFound is returned when the referenced order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrValidation is returned for malformed or incomplete input. Wrapped
	// errors carry the field-level detail.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicatePONumber is returned when creating an order with a PO
	// number that already exists
	ErrDuplicatePONumber = errors.New("po number already exists")
)
