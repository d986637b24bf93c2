package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/repo"
	"github.com/pkordes/servimarket/internal/slug"
)

// CategoryService implements business logic for Category operations.
// Category identity is the slug derived from the name, so "Plomería" and
// "plomeria" are the same category.
type CategoryService struct {
	categories repo.CategoryRepo
}

// NewCategoryService constructs a CategoryService backed by the provided CategoryRepo.
func NewCategoryService(categories repo.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create normalizes name into a slug and persists the category.
// Returns domain.ErrValidation if the name is empty or has no slug-able
// characters, and domain.ErrConflict if the slug already exists.
func (s *CategoryService) Create(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	sl := slug.Normalize(name)
	if sl == "" {
		return domain.Category{}, fmt.Errorf("%w: name must contain letters or digits", domain.ErrValidation)
	}
	c, err := s.categories.Create(ctx, name, sl)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	return c, nil
}

// List returns all categories ordered by name. Always non-nil.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
