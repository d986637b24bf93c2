package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a consumer's rating of a listing. Rating is 1..5.
type Review struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewStats summarizes the reviews of one listing.
// Average is 0 when Count is 0.
type ReviewStats struct {
	Count   int64
	Average float64
}
