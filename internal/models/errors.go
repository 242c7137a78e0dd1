package models

import "errors"

// Domain errors. Handlers map these to HTTP status codes; everything else
// is treated as an internal error.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation failed")
	ErrInvoiceExists = errors.New("job already has an invoice")
	ErrConflict      = errors.New("conflict with current state")
)
