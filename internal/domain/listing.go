// Package domain contains the core data types for the marketplace API.
// It is imported by every other internal package (repo, service, handler)
// and depends only on uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a service published by a business. It is the record the slug
// codec encodes: ID, Title and the optional City/State/Country.
type Listing struct {
	ID          uuid.UUID
	OwnerID     string // opaque subject from the identity provider
	Title       string
	Description string
	PriceMin    *int64 // nil when the owner did not publish a lower bound
	PriceMax    *int64
	CategoryID  *uuid.UUID
	City        string
	State       string
	Country     string
	Latitude    *float64 // set together with Longitude, or not at all
	Longitude   *float64
	ImageURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListingFilter narrows a listing search. Zero values mean "no constraint".
type ListingFilter struct {
	// Query matches title or description, case-insensitively.
	Query string
	// CategorySlug restricts results to one category.
	CategorySlug string
	// MinPrice and MaxPrice select listings whose price range overlaps
	// [MinPrice, MaxPrice].
	MinPrice *int64
	MaxPrice *int64
	City     string
	// Bounds restricts results to a map viewport.
	Bounds *Bounds
}

// Bounds is a latitude/longitude rectangle, as sent by a map view.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}
