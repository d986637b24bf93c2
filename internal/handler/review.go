package handler

import (
	"net/http"

	"github.com/pkordes/servimarket/internal/domain"
)

// CreateReview handles POST /listings/{id}/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body ReviewRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.reviews.Create(r.Context(), domain.Review{
		ListingID: listingID,
		AuthorID:  body.AuthorID,
		Rating:    body.Rating,
		Comment:   derefString(body.Comment),
	})
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(created))
}

// ListReviews handles GET /listings/{id}/reviews, newest first.
// Supports ?page= and ?limit= query parameters.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	page, err := bindPageParams(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	reviews, total, err := s.reviews.ListByListingPaged(r.Context(), listingID, page)
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}

	data := make([]Review, len(reviews))
	for i, rv := range reviews {
		data[i] = reviewToResponse(rv)
	}
	writeJSON(w, http.StatusOK, ListResponse[Review]{
		Data:       data,
		Pagination: Pagination{Page: page.Page, Limit: page.Limit, Total: int(total)},
	})
}

// GetReviewStats handles GET /listings/{id}/reviews/stats.
func (s *Server) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	st, err := s.reviews.Stats(r.Context(), listingID)
	if err != nil {
		s.writeServiceError(w, r, err, listingNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ReviewStats{Count: st.Count, Average: st.Average})
}

// DeleteReview handles DELETE /listings/{id}/reviews/{reviewId}.
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	reviewID, err := pathUUID(r, "reviewId")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.reviews.Delete(r.Context(), listingID, reviewID); err != nil {
		s.writeServiceError(w, r, err, "review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reviewToResponse(rv domain.Review) Review {
	return Review{
		ID:        rv.ID,
		ListingID: rv.ListingID,
		AuthorID:  rv.AuthorID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}
