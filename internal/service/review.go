package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/repo"
)

const maxCommentLen = 2000

// ReviewService implements business logic for Review operations.
// Every operation is scoped to a listing, which must exist.
type ReviewService struct {
	listings repo.ListingRepo
	reviews  repo.ReviewRepo
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(listings repo.ListingRepo, reviews repo.ReviewRepo) *ReviewService {
	return &ReviewService{listings: listings, reviews: reviews}
}

// Create validates the review, verifies the listing exists, then persists.
// Returns domain.ErrNotFound if the listing does not exist.
func (s *ReviewService) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, rv.ListingID); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	rv.AuthorID = strings.TrimSpace(rv.AuthorID)
	rv.Comment = strings.TrimSpace(rv.Comment)
	if err := validateReview(rv); err != nil {
		return domain.Review{}, err
	}
	result, err := s.reviews.Create(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return result, nil
}

// ListByListingPaged returns one page of a listing's reviews, newest first.
// Returns domain.ErrNotFound if the listing does not exist.
func (s *ReviewService) ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, 0, fmt.Errorf("service.ReviewService.ListByListingPaged: %w", err)
	}
	reviews, total, err := s.reviews.ListByListingPaged(ctx, listingID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ReviewService.ListByListingPaged: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, total, nil
}

// Stats returns the review count and average rating of a listing.
// Returns domain.ErrNotFound if the listing does not exist.
func (s *ReviewService) Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return domain.ReviewStats{}, fmt.Errorf("service.ReviewService.Stats: %w", err)
	}
	st, err := s.reviews.Stats(ctx, listingID)
	if err != nil {
		return domain.ReviewStats{}, fmt.Errorf("service.ReviewService.Stats: %w", err)
	}
	return st, nil
}

// Delete removes a review, scoped to its listing.
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	if err := s.reviews.Delete(ctx, listingID, reviewID); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	return nil
}

// validateReview enforces:
//   - AuthorID must be non-empty.
//   - Rating must be between 1 and 5 inclusive.
//   - Comment must be at most maxCommentLen characters.
func validateReview(rv domain.Review) error {
	if rv.AuthorID == "" {
		return fmt.Errorf("%w: author_id is required", domain.ErrValidation)
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if utf8.RuneCountInString(rv.Comment) > maxCommentLen {
		return fmt.Errorf("%w: comment must be at most %d characters", domain.ErrValidation, maxCommentLen)
	}
	return nil
}
