package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, price_min greater than price_max).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with a unique constraint,
// such as creating a category whose slug already exists.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrAmbiguous is returned by short-ID lookups when more than one listing
// shares the same ID prefix. Handlers present it the same way as ErrNotFound.
var ErrAmbiguous = errors.New("ambiguous identifier")

// ErrCategoryNotFound is returned when a listing references a category that
// does not exist. It wraps ErrNotFound, so errors.Is(err, ErrNotFound) holds.
var ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
