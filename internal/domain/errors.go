package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing driver name, end mileage below start mileage).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as a second fuel purchase linked to the same trip or a duplicate email.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials or tokens are rejected.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUpstream is returned when the report generator's remote completion call
// fails or produces a reply that does not match the report schema.
// Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream failure")
