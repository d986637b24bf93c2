// Package service contains the business logic for the marketplace API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/repo"
	"github.com/pkordes/servimarket/internal/slug"
)

const (
	maxTitleLen  = 120
	maxImageURLs = 10
)

// shortIDPattern matches what slug.ShortID yields for a canonical UUID.
var shortIDPattern = regexp.MustCompile(`^[0-9a-f]{1,8}$`)

// ListingService implements business logic for Listing operations.
// It holds the categories repo because a listing may reference a category
// that must exist.
type ListingService struct {
	listings   repo.ListingRepo
	categories repo.CategoryRepo
}

// NewListingService constructs a ListingService backed by the provided repos.
func NewListingService(listings repo.ListingRepo, categories repo.CategoryRepo) *ListingService {
	return &ListingService{listings: listings, categories: categories}
}

// Create validates and persists a new listing.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if
// the referenced category does not exist.
func (s *ListingService) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	l = trimListing(l)
	if strings.TrimSpace(l.OwnerID) == "" {
		return domain.Listing{}, fmt.Errorf("%w: owner_id is required", domain.ErrValidation)
	}
	if err := validateListing(l); err != nil {
		return domain.Listing{}, err
	}
	if err := s.checkCategory(ctx, l.CategoryID); err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.Create: %w", err)
	}
	result, err := s.listings.Create(ctx, l)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single listing by ID.
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	result, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug resolves a slug produced by slug.Encode to its listing.
// Only the trailing short-ID fragment is used, so slugs rendered before a
// title or location edit still resolve. A fragment that cannot be a UUID
// prefix is reported as domain.ErrNotFound without querying the repo.
func (s *ListingService) GetBySlug(ctx context.Context, sl string) (domain.Listing, error) {
	fragment := strings.ToLower(slug.Decode(sl))
	if !shortIDPattern.MatchString(fragment) {
		return domain.Listing{}, fmt.Errorf("service.ListingService.GetBySlug: %q: %w", sl, domain.ErrNotFound)
	}
	result, err := s.listings.GetByShortID(ctx, fragment)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.GetBySlug: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of listings matching f plus the total count.
// Always returns a non-nil slice.
func (s *ListingService) ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error) {
	if err := validateFilter(f); err != nil {
		return nil, 0, err
	}
	f.Query = strings.TrimSpace(f.Query)
	f.City = strings.TrimSpace(f.City)

	listings, total, err := s.listings.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListingService.ListPaged: %w", err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, total, nil
}

// Update validates and persists changes to an existing listing.
func (s *ListingService) Update(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	l = trimListing(l)
	if err := validateListing(l); err != nil {
		return domain.Listing{}, err
	}
	if err := s.checkCategory(ctx, l.CategoryID); err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.Update: %w", err)
	}
	result, err := s.listings.Update(ctx, l)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("service.ListingService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a listing by ID.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ListingService.Delete: %w", err)
	}
	return nil
}

func (s *ListingService) checkCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("category: %w", err)
	}
	return nil
}

func trimListing(l domain.Listing) domain.Listing {
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	l.City = strings.TrimSpace(l.City)
	l.State = strings.TrimSpace(l.State)
	l.Country = strings.TrimSpace(l.Country)
	return l
}

// validateListing enforces business rules common to both Create and Update.
func validateListing(l domain.Listing) error {
	if l.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(l.Title) > maxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, maxTitleLen)
	}
	if l.PriceMin != nil && *l.PriceMin < 0 || l.PriceMax != nil && *l.PriceMax < 0 {
		return fmt.Errorf("%w: prices must not be negative", domain.ErrValidation)
	}
	if l.PriceMin != nil && l.PriceMax != nil && *l.PriceMin > *l.PriceMax {
		return fmt.Errorf("%w: price_min must not exceed price_max", domain.ErrValidation)
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", domain.ErrValidation)
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	if len(l.ImageURLs) > maxImageURLs {
		return fmt.Errorf("%w: at most %d images are allowed", domain.ErrValidation, maxImageURLs)
	}
	for _, u := range l.ImageURLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("%w: image urls must not be empty", domain.ErrValidation)
		}
	}
	return nil
}

func validateFilter(f domain.ListingFilter) error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price must not exceed max_price", domain.ErrValidation)
	}
	if b := f.Bounds; b != nil {
		if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
			return fmt.Errorf("%w: map bounds are inverted", domain.ErrValidation)
		}
		if b.MinLat < -90 || b.MaxLat > 90 || b.MinLng < -180 || b.MaxLng > 180 {
			return fmt.Errorf("%w: map bounds are out of range", domain.ErrValidation)
		}
	}
	return nil
}
