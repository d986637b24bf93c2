package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups listings (e.g. "Plomería", "Diseño Web").
// Identity is determined by Slug, which is derived from Name with slug.Normalize.
type Category struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}
