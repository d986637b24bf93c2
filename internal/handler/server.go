// Package handler implements the HTTP handlers for the marketplace API.
// All handlers are methods on Server. Methods are split into resource files
// (listing.go, category.go, review.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/slug"
)

// ListingServicer defines the business operations the listing handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type ListingServicer interface {
	Create(ctx context.Context, l domain.Listing) (domain.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	GetBySlug(ctx context.Context, slug string) (domain.Listing, error)
	ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error)
	Update(ctx context.Context, l domain.Listing) (domain.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryServicer defines the business operations the category handlers depend on.
type CategoryServicer interface {
	Create(ctx context.Context, name string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// ReviewServicer defines the business operations the review handlers depend on.
type ReviewServicer interface {
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)
	ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)
	Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error)
	Delete(ctx context.Context, listingID, reviewID uuid.UUID) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	listings   ListingServicer
	categories CategoryServicer
	reviews    ReviewServicer
	slugs      slug.Codec
	log        *slog.Logger
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithSlugCodec sets the codec used to render listing slugs.
func WithSlugCodec(c slug.Codec) Option {
	return func(s *Server) { s.slugs = c }
}

// WithLogger sets the logger used for unexpected handler errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer constructs the Server with all its dependencies.
// Any service may be nil when the caller only exercises the others.
func NewServer(listings ListingServicer, categories CategoryServicer, reviews ReviewServicer, opts ...Option) *Server {
	s := &Server{
		listings:   listings,
		categories: categories,
		reviews:    reviews,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the chi router serving the whole API. Middleware is applied
// by the caller so tests can exercise handlers without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.ListCategories)
		r.Post("/", s.CreateCategory)
	})

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", s.ListListings)
		r.Post("/", s.CreateListing)
		r.Get("/by-slug/{slug}", s.GetListingBySlug)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetListing)
			r.Put("/", s.UpdateListing)
			r.Delete("/", s.DeleteListing)

			r.Get("/reviews", s.ListReviews)
			r.Post("/reviews", s.CreateReview)
			r.Get("/reviews/stats", s.GetReviewStats)
			r.Delete("/reviews/{reviewId}", s.DeleteReview)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody(codeNotFound, "route not found"))
	})
	return r
}
