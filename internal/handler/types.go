package handler

import (
	"time"

	"github.com/google/uuid"
)

// Pagination is the metadata attached to every list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListResponse wraps one page of results.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListingRequest is the body of POST /listings and PUT /listings/{id}.
// OwnerID is ignored on update.
type ListingRequest struct {
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	PriceMin    *int64     `json:"price_min,omitempty"`
	PriceMax    *int64     `json:"price_max,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	City        *string    `json:"city,omitempty"`
	State       *string    `json:"state,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
}

// Listing is the API representation of a listing. Slug is computed on every
// response and is not stored.
type Listing struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PriceMin    *int64     `json:"price_min,omitempty"`
	PriceMax    *int64     `json:"price_max,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Country     string     `json:"country,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURLs   []string   `json:"image_urls"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryRequest is the body of POST /categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Category is the API representation of a category.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewRequest is the body of POST /listings/{id}/reviews.
type ReviewRequest struct {
	AuthorID string  `json:"author_id"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
}

// Review is the API representation of a review.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewStats is the body of GET /listings/{id}/reviews/stats.
type ReviewStats struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}
