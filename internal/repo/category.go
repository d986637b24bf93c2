package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/servimarket/internal/domain"
)

// CategoryRepo defines the persistence operations for Categories.
type CategoryRepo interface {
	// Create inserts a category. Returns domain.ErrConflict if the slug is taken.
	Create(ctx context.Context, name, slug string) (domain.Category, error)

	// GetByID retrieves a category by its UUID primary key.
	// Returns domain.ErrNotFound if no category with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error)

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]domain.Category, error)
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

// Create inserts a category row. Unlike tags, categories are curated, so a
// duplicate slug is reported instead of silently returning the existing row.
func (r *pgCategoryRepo) Create(ctx context.Context, name, slug string) (domain.Category, error) {
	const q = `
		INSERT INTO categories (name, slug)
		VALUES (@name, @slug)
		RETURNING id, name, slug, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "slug": slug})
	result, err := scanCategory(row)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: slug %q: %w", slug, domain.ErrConflict)
		}
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a category by primary key.
func (r *pgCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	const q = `SELECT id, name, slug, created_at FROM categories WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns every category ordered by name.
func (r *pgCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT id, name, slug, created_at FROM categories ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.List: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: rows: %w", err)
	}
	return categories, nil
}

// scanCategory maps a single database row into a domain.Category.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c  domain.Category
		id pgtype.UUID
	)
	err := s.Scan(&id, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
