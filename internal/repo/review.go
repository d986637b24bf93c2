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

// ReviewRepo defines the persistence operations for Reviews.
// Reads and deletes are scoped by listingID to enforce ownership.
type ReviewRepo interface {
	// Create inserts a review and returns the persisted record.
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)

	// ListByListingPaged returns one page of a listing's reviews, newest first,
	// and the total number of reviews for that listing.
	ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)

	// Stats returns the review count and average rating for a listing.
	Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error)

	// Delete removes a review by ID, scoped to the given listingID.
	// Returns domain.ErrNotFound if no such review exists under that listing.
	Delete(ctx context.Context, listingID, reviewID uuid.UUID) error
}

// pgReviewRepo is the Postgres implementation of ReviewRepo.
type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

func (r *pgReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (listing_id, author_id, rating, comment)
		VALUES (@listing_id, @author_id, @rating, @comment)
		RETURNING id, listing_id, author_id, rating, comment, created_at`

	args := pgx.NamedArgs{
		"listing_id": rv.ListingID,
		"author_id":  rv.AuthorID,
		"rating":     rv.Rating,
		"comment":    rv.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReview(row)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: listing: %w", domain.ErrNotFound)
		}
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) ListByListingPaged(ctx context.Context, listingID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	const countQ = `SELECT count(*) FROM reviews WHERE listing_id = @listing_id`
	const pageQ = `
		SELECT id, listing_id, author_id, rating, comment, created_at
		FROM reviews
		WHERE listing_id = @listing_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"listing_id": listingID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListByListingPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, pageQ, pgx.NamedArgs{
		"listing_id": listingID,
		"limit":      p.Limit,
		"offset":     p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListByListingPaged: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ReviewRepo.ListByListingPaged: scan: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListByListingPaged: rows: %w", err)
	}
	return reviews, total, nil
}

func (r *pgReviewRepo) Stats(ctx context.Context, listingID uuid.UUID) (domain.ReviewStats, error) {
	const q = `
		SELECT count(*), COALESCE(avg(rating), 0)::float8
		FROM reviews
		WHERE listing_id = @listing_id`

	var st domain.ReviewStats
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"listing_id": listingID}).Scan(&st.Count, &st.Average); err != nil {
		return domain.ReviewStats{}, fmt.Errorf("repo.ReviewRepo.Stats: %w", err)
	}
	return st, nil
}

func (r *pgReviewRepo) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	const q = `DELETE FROM reviews WHERE id = @id AND listing_id = @listing_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": reviewID, "listing_id": listingID})
	if err != nil {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanReview maps a single database row into a domain.Review.
func scanReview(s scanner) (domain.Review, error) {
	var (
		rv        domain.Review
		id        pgtype.UUID
		listingID pgtype.UUID
		rating    int16
	)
	err := s.Scan(&id, &listingID, &rv.AuthorID, &rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	rv.ID = uuid.UUID(id.Bytes)
	rv.ListingID = uuid.UUID(listingID.Bytes)
	rv.Rating = int(rating)
	return rv, nil
}
