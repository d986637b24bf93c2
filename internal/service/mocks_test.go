package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/repo"
)

// mockListingRepo is a hand-written test double for repo.ListingRepo.
// Each method is a function field; set only the ones your test needs.
type mockListingRepo struct {
	create       func(ctx context.Context, l domain.Listing) (domain.Listing, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	getByShortID func(ctx context.Context, prefix string) (domain.Listing, error)
	listPaged    func(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error)
	update       func(ctx context.Context, l domain.Listing) (domain.Listing, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockListingRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	return m.create(ctx, l)
}
func (m *mockListingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	return m.getByID(ctx, id)
}
func (m *mockListingRepo) GetByShortID(ctx context.Context, prefix string) (domain.Listing, error) {
	return m.getByShortID(ctx, prefix)
}
func (m *mockListingRepo) ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockListingRepo) Update(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	return m.update(ctx, l)
}
func (m *mockListingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockCategoryRepo is a hand-written test double for repo.CategoryRepo.
type mockCategoryRepo struct {
	create  func(ctx context.Context, name, slug string) (domain.Category, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Category, error)
	list    func(ctx context.Context) ([]domain.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, name, slug string) (domain.Category, error) {
	return m.create(ctx, name, slug)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, id)
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return m.list(ctx)
}

// mockReviewRepo is a hand-written test double for repo.ReviewRepo.
type mockReviewRepo struct {
	create             func(ctx context.Context, rv domain.Review) (domain.Review, error)
	listByListingPaged func(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)
	stats              func(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error)
	delete             func(ctx context.Context, listingID, reviewID uuid.UUID) error
}

func (m *mockReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, rv)
}
func (m *mockReviewRepo) ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	return m.listByListingPaged(ctx, listingID, p)
}
func (m *mockReviewRepo) Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error) {
	return m.stats(ctx, listingID)
}
func (m *mockReviewRepo) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	return m.delete(ctx, listingID, reviewID)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.ListingRepo  = (*mockListingRepo)(nil)
	_ repo.CategoryRepo = (*mockCategoryRepo)(nil)
	_ repo.ReviewRepo   = (*mockReviewRepo)(nil)
)

func ptr[T any](v T) *T { return &v }
