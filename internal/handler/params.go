package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/servimarket/internal/domain"
)

// pageParams are the optional ?page= and ?limit= query parameters.
type pageParams struct {
	Page  *int
	Limit *int
}

// listingQuery holds the raw GET /listings query parameters.
type listingQuery struct {
	pageParams
	Q        *string
	Category *string
	City     *string
	MinPrice *int64
	MaxPrice *int64
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
}

// bindQuery binds each named query parameter into its destination pointer
// using form/explode style, as an OpenAPI-generated server would.
func bindQuery(r *http.Request, params map[string]any) error {
	q := r.URL.Query()
	for name, dest := range params {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			return fmt.Errorf("invalid query parameter %q", name)
		}
	}
	return nil
}

func bindPageParams(r *http.Request) (domain.PaginationParams, error) {
	var p pageParams
	if err := bindQuery(r, map[string]any{"page": &p.Page, "limit": &p.Limit}); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(p.Page, p.Limit), nil
}

// bindListingQuery parses GET /listings parameters into a filter and page.
func bindListingQuery(r *http.Request) (domain.ListingFilter, domain.PaginationParams, error) {
	var lq listingQuery
	err := bindQuery(r, map[string]any{
		"page":      &lq.Page,
		"limit":     &lq.Limit,
		"q":         &lq.Q,
		"category":  &lq.Category,
		"city":      &lq.City,
		"min_price": &lq.MinPrice,
		"max_price": &lq.MaxPrice,
		"min_lat":   &lq.MinLat,
		"max_lat":   &lq.MaxLat,
		"min_lng":   &lq.MinLng,
		"max_lng":   &lq.MaxLng,
	})
	if err != nil {
		return domain.ListingFilter{}, domain.PaginationParams{}, err
	}

	f := domain.ListingFilter{
		Query:        derefString(lq.Q),
		CategorySlug: derefString(lq.Category),
		City:         derefString(lq.City),
		MinPrice:     lq.MinPrice,
		MaxPrice:     lq.MaxPrice,
	}

	bounds := []*float64{lq.MinLat, lq.MaxLat, lq.MinLng, lq.MaxLng}
	set := 0
	for _, b := range bounds {
		if b != nil {
			set++
		}
	}
	switch set {
	case 0:
	case len(bounds):
		f.Bounds = &domain.Bounds{MinLat: *lq.MinLat, MaxLat: *lq.MaxLat, MinLng: *lq.MinLng, MaxLng: *lq.MaxLng}
	default:
		return domain.ListingFilter{}, domain.PaginationParams{}, fmt.Errorf("min_lat, max_lat, min_lng and max_lng must be given together")
	}

	return f, domain.NewPaginationParams(lq.Page, lq.Limit), nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}

// derefString returns the value of s, or "" if s is nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
