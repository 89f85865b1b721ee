package app

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP status codes with
// errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrConflict   = errors.New("conflicting records exist")
	ErrExtraction = errors.New("extraction service failed")
)
