package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/slug"
)

const (
	listingNotFound  = "listing not found"
	categoryNotFound = "category not found"
)

// CreateListing handles POST /listings.
func (s *Server) CreateListing(w http.ResponseWriter, r *http.Request) {
	var body ListingRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.listings.Create(r.Context(), requestToListing(uuid.Nil, body))
	if err != nil {
		s.writeServiceError(w, r, err, categoryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, s.listingToResponse(created))
}

// ListListings handles GET /listings.
// Supports ?q=, ?category=, ?city=, ?min_price=, ?max_price=, the map
// viewport ?min_lat=&max_lat=&min_lng=&max_lng=, and ?page=/?limit=
// (defaults: page=1, limit=20, max=100).
func (s *Server) ListListings(w http.ResponseWriter, r *http.Request) {
	filter, page, err := bindListingQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	listings, total, err := s.listings.ListPaged(r.Context(), filter, page)
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}

	data := make([]Listing, len(listings))
	for i, l := range listings {
		data[i] = s.listingToResponse(l)
	}
	writeJSON(w, http.StatusOK, ListResponse[Listing]{
		Data:       data,
		Pagination: Pagination{Page: page.Page, Limit: page.Limit, Total: int(total)},
	})
}

// GetListing handles GET /listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	l, err := s.listings.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.listingToResponse(l))
}

// GetListingBySlug handles GET /listings/by-slug/{slug}.
// Any slug whose trailing fragment identifies exactly one listing resolves,
// including slugs rendered before the listing's title or location changed.
func (s *Server) GetListingBySlug(w http.ResponseWriter, r *http.Request) {
	l, err := s.listings.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.listingToResponse(l))
}

// UpdateListing handles PUT /listings/{id}.
func (s *Server) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body ListingRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.listings.Update(r.Context(), requestToListing(id, body))
	if err != nil {
		msg := listingNotFound
		if errors.Is(err, domain.ErrCategoryNotFound) {
			msg = categoryNotFound
		}
		s.writeServiceError(w, r, err, msg)
		return
	}
	writeJSON(w, http.StatusOK, s.listingToResponse(updated))
}

// DeleteListing handles DELETE /listings/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.listings.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToListing converts a request body into a domain.Listing.
// id is uuid.Nil on create.
func requestToListing(id uuid.UUID, body ListingRequest) domain.Listing {
	return domain.Listing{
		ID:          id,
		OwnerID:     body.OwnerID,
		Title:       body.Title,
		Description: derefString(body.Description),
		PriceMin:    body.PriceMin,
		PriceMax:    body.PriceMax,
		CategoryID:  body.CategoryID,
		City:        derefString(body.City),
		State:       derefString(body.State),
		Country:     derefString(body.Country),
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		ImageURLs:   body.ImageURLs,
	}
}

// listingToResponse converts a domain.Listing into its API shape, rendering
// the slug from the listing's current title and location.
func (s *Server) listingToResponse(l domain.Listing) Listing {
	images := l.ImageURLs
	if images == nil {
		images = []string{}
	}
	return Listing{
		ID: l.ID,
		Slug: s.slugs.Encode(slug.Record{
			ID:      l.ID.String(),
			Title:   l.Title,
			City:    l.City,
			State:   l.State,
			Country: l.Country,
		}),
		OwnerID:     l.OwnerID,
		Title:       l.Title,
		Description: l.Description,
		PriceMin:    l.PriceMin,
		PriceMax:    l.PriceMax,
		CategoryID:  l.CategoryID,
		City:        l.City,
		State:       l.State,
		Country:     l.Country,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		ImageURLs:   images,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
