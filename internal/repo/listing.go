package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/servimarket/internal/domain"
)

// ListingRepo defines the persistence operations for Listings.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ListingRepo interface {
	// Create inserts a new listing and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, l domain.Listing) (domain.Listing, error)

	// GetByID retrieves a single listing by its UUID primary key.
	// Returns domain.ErrNotFound if no listing with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)

	// GetByShortID retrieves the single listing whose id begins with prefix.
	// Returns domain.ErrNotFound when nothing matches and domain.ErrAmbiguous
	// when more than one listing matches.
	GetByShortID(ctx context.Context, prefix string) (domain.Listing, error)

	// ListPaged returns one page of listings matching f, newest first, and
	// the total number of matches.
	ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error)

	// Update overwrites the mutable fields of an existing listing and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, l domain.Listing) (domain.Listing, error)

	// Delete removes a listing by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgListingRepo is the Postgres implementation of ListingRepo.
type pgListingRepo struct {
	db db
}

// NewListingRepo constructs a ListingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewListingRepo(db db) ListingRepo {
	return &pgListingRepo{db: db}
}

const listingColumns = `id, owner_id, title, description, price_min, price_max, category_id,
		city, state, country, latitude, longitude, image_urls, created_at, updated_at`

// Create inserts a new listing row and returns the full persisted record.
func (r *pgListingRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	const q = `
		INSERT INTO listings (owner_id, title, description, price_min, price_max, category_id,
		                      city, state, country, latitude, longitude, image_urls)
		VALUES (@owner_id, @title, @description, @price_min, @price_max, @category_id,
		        @city, @state, @country, @latitude, @longitude, @image_urls)
		RETURNING ` + listingColumns

	row := r.db.QueryRow(ctx, q, listingArgs(l))
	result, err := scanListing(row)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

// GetByID retrieves a listing by primary key.
func (r *pgListingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanListing(row)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByShortID fetches at most two candidates so that an ambiguous prefix
// can be told apart from a unique one without scanning every match.
func (r *pgListingRepo) GetByShortID(ctx context.Context, prefix string) (domain.Listing, error) {
	const q = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id::text LIKE @prefix || '%'
		ORDER BY created_at
		LIMIT 2`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": escapeLike(strings.ToLower(prefix))})
	if err != nil {
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByShortID: %w", err)
	}
	defer rows.Close()

	var found []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByShortID: scan: %w", err)
		}
		found = append(found, l)
	}
	if err := rows.Err(); err != nil {
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByShortID: rows: %w", err)
	}

	switch len(found) {
	case 0:
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByShortID: %w", domain.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.GetByShortID: %q: %w", prefix, domain.ErrAmbiguous)
	}
}

// listingFilterWhere is shared by the count and page queries of ListPaged.
// Every clause is disabled when its parameter carries the zero value, so the
// statement text stays constant regardless of which filters are active.
const listingFilterWhere = `
		WHERE (@q = '' OR l.title ILIKE '%' || @q || '%' OR l.description ILIKE '%' || @q || '%')
		  AND (@category = '' OR l.category_id = (SELECT c.id FROM categories c WHERE c.slug = @category))
		  AND (@city = '' OR lower(l.city) = lower(@city))
		  AND (@min_price::bigint IS NULL OR l.price_max IS NULL OR l.price_max >= @min_price::bigint)
		  AND (@max_price::bigint IS NULL OR l.price_min IS NULL OR l.price_min <= @max_price::bigint)
		  AND (NOT @has_bounds::boolean OR (
		        l.latitude  BETWEEN @min_lat::float8 AND @max_lat::float8 AND
		        l.longitude BETWEEN @min_lng::float8 AND @max_lng::float8))`

// ListPaged returns one page of listings matching f ordered by created_at descending.
func (r *pgListingRepo) ListPaged(ctx context.Context, f domain.ListingFilter, p domain.PaginationParams) ([]domain.Listing, int64, error) {
	const countQ = `SELECT count(*) FROM listings l` + listingFilterWhere

	const pageQ = `
		SELECT l.id, l.owner_id, l.title, l.description, l.price_min, l.price_max, l.category_id,
		       l.city, l.state, l.country, l.latitude, l.longitude, l.image_urls, l.created_at, l.updated_at
		FROM listings l` + listingFilterWhere + `
		ORDER BY l.created_at DESC, l.id
		LIMIT @limit OFFSET @offset`

	args := filterArgs(f)

	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ListingRepo.ListPaged: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()

	rows, err := r.db.Query(ctx, pageQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ListingRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ListingRepo.ListPaged: scan: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ListingRepo.ListPaged: rows: %w", err)
	}
	return listings, total, nil
}

// Update overwrites the mutable fields of a listing and returns the updated record.
// owner_id is immutable and is not touched.
func (r *pgListingRepo) Update(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	const q = `
		UPDATE listings
		SET title       = @title,
		    description = @description,
		    price_min   = @price_min,
		    price_max   = @price_max,
		    category_id = @category_id,
		    city        = @city,
		    state       = @state,
		    country     = @country,
		    latitude    = @latitude,
		    longitude   = @longitude,
		    image_urls  = @image_urls,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + listingColumns

	args := listingArgs(l)
	args["id"] = l.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanListing(row)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("repo.ListingRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

// Delete removes a listing by primary key. Its reviews cascade.
func (r *pgListingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM listings WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ListingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ListingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// listingArgs maps the writable columns of l to named args.
// Nil pointers become NULL.
func listingArgs(l domain.Listing) pgx.NamedArgs {
	images := l.ImageURLs
	if images == nil {
		images = []string{}
	}
	return pgx.NamedArgs{
		"owner_id":    l.OwnerID,
		"title":       l.Title,
		"description": l.Description,
		"price_min":   l.PriceMin,
		"price_max":   l.PriceMax,
		"category_id": l.CategoryID,
		"city":        l.City,
		"state":       l.State,
		"country":     l.Country,
		"latitude":    l.Latitude,
		"longitude":   l.Longitude,
		"image_urls":  images,
	}
}

func filterArgs(f domain.ListingFilter) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"q":          escapeLike(f.Query),
		"category":   f.CategorySlug,
		"city":       f.City,
		"min_price":  f.MinPrice,
		"max_price":  f.MaxPrice,
		"has_bounds": f.Bounds != nil,
		"min_lat":    0.0,
		"max_lat":    0.0,
		"min_lng":    0.0,
		"max_lng":    0.0,
	}
	if b := f.Bounds; b != nil {
		args["min_lat"] = b.MinLat
		args["max_lat"] = b.MaxLat
		args["min_lng"] = b.MinLng
		args["max_lng"] = b.MaxLng
	}
	return args
}

// escapeLike escapes the LIKE wildcards in s so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// mapWriteErr translates constraint violations raised by INSERT/UPDATE.
// A foreign-key failure means the referenced category does not exist.
func mapWriteErr(err error) error {
	if pgErrCode(err) == pgForeignKeyViolation {
		return domain.ErrCategoryNotFound
	}
	return err
}

// scanListing maps a single database row into a domain.Listing.
// It handles the UUID and nullable column conversions.
func scanListing(s scanner) (domain.Listing, error) {
	var (
		l          domain.Listing
		id         pgtype.UUID
		categoryID pgtype.UUID
		priceMin   pgtype.Int8
		priceMax   pgtype.Int8
		lat        pgtype.Float8
		lng        pgtype.Float8
	)

	err := s.Scan(&id, &l.OwnerID, &l.Title, &l.Description, &priceMin, &priceMax, &categoryID,
		&l.City, &l.State, &l.Country, &lat, &lng, &l.ImageURLs, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, domain.ErrNotFound
		}
		return domain.Listing{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	if categoryID.Valid {
		c := uuid.UUID(categoryID.Bytes)
		l.CategoryID = &c
	}
	if priceMin.Valid {
		l.PriceMin = &priceMin.Int64
	}
	if priceMax.Valid {
		l.PriceMax = &priceMax.Int64
	}
	if lat.Valid && lng.Valid {
		l.Latitude = &lat.Float64
		l.Longitude = &lng.Float64
	}
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	return l, nil
}
