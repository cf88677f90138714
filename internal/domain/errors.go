package domain

import "errors"

// ErrNotFound is returned by lookups when the requested trip does not exist.
// Mutations never return it: a missing target is a silent no-op.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when caller input fails validation
// (e.g. blank title, missing travel dates).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrCorrupt is returned by the trip repository when the persisted payload
// cannot be decoded.
var ErrCorrupt = errors.New("corrupt payload")

// ErrCatalog is returned when the shipped reference catalog is malformed.
// It is a fatal configuration error.
var ErrCatalog = errors.New("invalid catalog")
