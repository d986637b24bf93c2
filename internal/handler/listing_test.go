package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/handler"
	"github.com/pkordes/servimarket/internal/slug"
)

func listingFixture() domain.Listing {
	return domain.Listing{
		ID:        uuid.MustParse("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"),
		OwnerID:   "auth0|owner",
		Title:     "Diseño Web",
		City:      "Cali",
		State:     "Valle del Cauca",
		Country:   "Colombia",
		PriceMin:  ptr(int64(200000)),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func newListingServer(svc handler.ListingServicer, opts ...handler.Option) *handler.Server {
	return handler.NewServer(svc, nil, nil, opts...)
}

// ---- POST /listings --------------------------------------------------------

func TestCreateListing_201(t *testing.T) {
	fixture := listingFixture()
	var got domain.Listing
	svc := &mockListingServicer{
		create: func(_ context.Context, l domain.Listing) (domain.Listing, error) {
			got = l
			return fixture, nil
		},
	}

	req := jsonRequest(t, http.MethodPost, "/listings", map[string]any{
		"owner_id":  "auth0|owner",
		"title":     "Diseño Web",
		"city":      "Cali",
		"price_min": 200000,
	})
	rec := serve(newListingServer(svc), req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cali", got.City)
	require.NotNil(t, got.PriceMin)
	assert.Equal(t, int64(200000), *got.PriceMin)

	resp := decode[handler.Listing](t, rec.Body)
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, "diseno-web-cali-valle-del-cauca-colombia-a1b2c3d4", resp.Slug)
	assert.NotNil(t, resp.ImageURLs)
}

func TestCreateListing_422_ValidationError(t *testing.T) {
	svc := &mockListingServicer{
		create: func(_ context.Context, _ domain.Listing) (domain.Listing, error) {
			return domain.Listing{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		},
	}

	rec := serve(newListingServer(svc), jsonRequest(t, http.MethodPost, "/listings", map[string]any{"title": ""}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec.Body)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "title is required", resp.Error.Message)
}

func TestCreateListing_400_MalformedBody(t *testing.T) {
	srv := newListingServer(&mockListingServicer{})

	req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader("{not json"))
	rec := serve(srv, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(""))
	rec = serve(srv, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateListing_413_BodyTooLarge(t *testing.T) {
	srv := newListingServer(&mockListingServicer{})

	req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateListing_500_UnexpectedError(t *testing.T) {
	svc := &mockListingServicer{
		create: func(_ context.Context, _ domain.Listing) (domain.Listing, error) {
			return domain.Listing{}, errors.New("connection refused")
		},
	}

	rec := serve(newListingServer(svc), jsonRequest(t, http.MethodPost, "/listings", map[string]any{"title": "x"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec.Body)
	assert.Equal(t, "internal", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

// ---- GET /listings ---------------------------------------------------------

func TestListListings_200_WithFilters(t *testing.T) {
	var gotFilter domain.ListingFilter
	var gotPage domain.PaginationParams
	svc := &mockListingServicer{
		listPaged: func(_ context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error) {
			gotFilter, gotPage = f, p
			return []domain.Listing{listingFixture()}, 41, nil
		},
	}

	target := "/listings?q=web&category=diseno-web&city=Cali&min_price=100&max_price=900" +
		"&min_lat=3&max_lat=4&min_lng=-77&max_lng=-76&page=3&limit=20"
	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "web", gotFilter.Query)
	assert.Equal(t, "diseno-web", gotFilter.CategorySlug)
	assert.Equal(t, "Cali", gotFilter.City)
	require.NotNil(t, gotFilter.MinPrice)
	assert.Equal(t, int64(100), *gotFilter.MinPrice)
	require.NotNil(t, gotFilter.Bounds)
	assert.Equal(t, domain.Bounds{MinLat: 3, MaxLat: 4, MinLng: -77, MaxLng: -76}, *gotFilter.Bounds)
	assert.Equal(t, 3, gotPage.Page)

	resp := decode[handler.ListResponse[handler.Listing]](t, rec.Body)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 41, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Page)
}

func TestListListings_200_EmptyIsArray(t *testing.T) {
	svc := &mockListingServicer{
		listPaged: func(_ context.Context, _ domain.ListingFilter, _ domain.PaginationParams) ([]domain.Listing, int64, error) {
			return []domain.Listing{}, 0, nil
		},
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, "/listings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListListings_400_BadParams(t *testing.T) {
	srv := newListingServer(&mockListingServicer{})

	for _, target := range []string{
		"/listings?page=abc",
		"/listings?min_price=cheap",
		"/listings?min_lat=3&max_lat=4",
	} {
		rec := serve(srv, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

// ---- GET /listings/{id} ----------------------------------------------------

func TestGetListing_200(t *testing.T) {
	fixture := listingFixture()
	svc := &mockListingServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Listing, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, "/listings/"+fixture.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Listing](t, rec.Body)
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestGetListing_404(t *testing.T) {
	svc := &mockListingServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Listing, error) {
			return domain.Listing{}, domain.ErrNotFound
		},
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, "/listings/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetListing_400_BadID(t *testing.T) {
	rec := serve(newListingServer(&mockListingServicer{}), httptest.NewRequest(http.MethodGet, "/listings/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /listings/by-slug/{slug} ------------------------------------------

func TestGetListingBySlug_RoundTrip(t *testing.T) {
	fixture := listingFixture()
	rendered := slug.Encode(slug.Record{
		ID: fixture.ID.String(), Title: fixture.Title,
		City: fixture.City, State: fixture.State, Country: fixture.Country,
	})

	svc := &mockListingServicer{
		getBySlug: func(_ context.Context, s string) (domain.Listing, error) {
			assert.Equal(t, rendered, s)
			return fixture, nil
		},
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, "/listings/by-slug/"+rendered, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Listing](t, rec.Body)
	assert.Equal(t, rendered, resp.Slug)
	assert.Equal(t, slug.ShortID(fixture.ID.String()), slug.Decode(resp.Slug))
}

func TestGetListingBySlug_404_NotFoundAndAmbiguous(t *testing.T) {
	for _, svcErr := range []error{domain.ErrNotFound, domain.ErrAmbiguous} {
		svc := &mockListingServicer{
			getBySlug: func(_ context.Context, _ string) (domain.Listing, error) {
				return domain.Listing{}, fmt.Errorf("service: %w", svcErr)
			},
		}

		rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodGet, "/listings/by-slug/plomeria-colombia-abcdef01", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decode[handler.ErrorResponse](t, rec.Body)
		assert.Equal(t, "listing not found", resp.Error.Message)
	}
}

func TestListingSlug_UsesConfiguredFallback(t *testing.T) {
	fixture := listingFixture()
	fixture.City, fixture.State, fixture.Country = "", "", ""
	svc := &mockListingServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Listing, error) { return fixture, nil },
	}
	srv := newListingServer(svc, handler.WithSlugCodec(slug.NewCodec("Ecuador")))

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/listings/"+fixture.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Listing](t, rec.Body)
	assert.Equal(t, "diseno-web-ecuador-a1b2c3d4", resp.Slug)
}

// ---- PUT /listings/{id} ----------------------------------------------------

func TestUpdateListing_200(t *testing.T) {
	fixture := listingFixture()
	fixture.Title = "Diseño Web Pro"
	svc := &mockListingServicer{
		update: func(_ context.Context, l domain.Listing) (domain.Listing, error) {
			assert.Equal(t, fixture.ID, l.ID, "path id is used")
			return fixture, nil
		},
	}

	req := jsonRequest(t, http.MethodPut, "/listings/"+fixture.ID.String(), map[string]any{"title": "Diseño Web Pro"})
	rec := serve(newListingServer(svc), req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Listing](t, rec.Body)
	assert.Equal(t, "diseno-web-pro-cali-valle-del-cauca-colombia-a1b2c3d4", resp.Slug)
}

func TestUpdateListing_404(t *testing.T) {
	svc := &mockListingServicer{
		update: func(_ context.Context, _ domain.Listing) (domain.Listing, error) {
			return domain.Listing{}, domain.ErrNotFound
		},
	}

	req := jsonRequest(t, http.MethodPut, "/listings/"+uuid.NewString(), map[string]any{"title": "x"})
	rec := serve(newListingServer(svc), req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "listing not found", decode[handler.ErrorResponse](t, rec.Body).Error.Message)
}

func TestUpdateListing_UnknownCategory404(t *testing.T) {
	svc := &mockListingServicer{
		update: func(_ context.Context, _ domain.Listing) (domain.Listing, error) {
			return domain.Listing{}, fmt.Errorf("service.ListingService.Update: %w", domain.ErrCategoryNotFound)
		},
	}

	req := jsonRequest(t, http.MethodPut, "/listings/"+uuid.NewString(),
		map[string]any{"title": "x", "category_id": uuid.NewString()})
	rec := serve(newListingServer(svc), req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[handler.ErrorResponse](t, rec.Body)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "category not found", body.Error.Message)
}

// ---- DELETE /listings/{id} -------------------------------------------------

func TestDeleteListing_204(t *testing.T) {
	svc := &mockListingServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodDelete, "/listings/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteListing_404(t *testing.T) {
	svc := &mockListingServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	rec := serve(newListingServer(svc), httptest.NewRequest(http.MethodDelete, "/listings/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
