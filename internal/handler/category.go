package handler

import (
	"net/http"

	"github.com/pkordes/servimarket/internal/domain"
)

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "category not found")
		return
	}

	resp := make([]Category, len(categories))
	for i, c := range categories {
		resp[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateCategory handles POST /categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.categories.Create(r.Context(), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err, "category not found")
		return
	}
	writeJSON(w, http.StatusCreated, categoryToResponse(c))
}

func categoryToResponse(c domain.Category) Category {
	return Category{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}
