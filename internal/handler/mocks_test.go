package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/handler"
)

// mockListingServicer is a test double for handler.ListingServicer.
// Set only the method fields your test needs.
type mockListingServicer struct {
	create    func(ctx context.Context, l domain.Listing) (domain.Listing, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	getBySlug func(ctx context.Context, slug string) (domain.Listing, error)
	listPaged func(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error)
	update    func(ctx context.Context, l domain.Listing) (domain.Listing, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockListingServicer) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	return m.create(ctx, l)
}
func (m *mockListingServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	return m.getByID(ctx, id)
}
func (m *mockListingServicer) GetBySlug(ctx context.Context, slug string) (domain.Listing, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockListingServicer) ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockListingServicer) Update(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	return m.update(ctx, l)
}
func (m *mockListingServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockCategoryServicer is a test double for handler.CategoryServicer.
type mockCategoryServicer struct {
	create func(ctx context.Context, name string) (domain.Category, error)
	list   func(ctx context.Context) ([]domain.Category, error)
}

func (m *mockCategoryServicer) Create(ctx context.Context, name string) (domain.Category, error) {
	return m.create(ctx, name)
}
func (m *mockCategoryServicer) List(ctx context.Context) ([]domain.Category, error) {
	return m.list(ctx)
}

// mockReviewServicer is a test double for handler.ReviewServicer.
type mockReviewServicer struct {
	create             func(ctx context.Context, rv domain.Review) (domain.Review, error)
	listByListingPaged func(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)
	stats              func(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error)
	delete             func(ctx context.Context, listingID, reviewID uuid.UUID) error
}

func (m *mockReviewServicer) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, rv)
}
func (m *mockReviewServicer) ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	return m.listByListingPaged(ctx, listingID, p)
}
func (m *mockReviewServicer) Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error) {
	return m.stats(ctx, listingID)
}
func (m *mockReviewServicer) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	return m.delete(ctx, listingID, reviewID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.ListingServicer  = (*mockListingServicer)(nil)
	_ handler.CategoryServicer = (*mockCategoryServicer)(nil)
	_ handler.ReviewServicer   = (*mockReviewServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve runs req through the router built from srv and returns the recorder.
func serve(srv *handler.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, jsonBody(t, v))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func ptr[T any](v T) *T { return &v }
