package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/servimarket/internal/domain"
	"github.com/pkordes/servimarket/internal/repo"
	"github.com/pkordes/servimarket/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; the test is skipped otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func ptr[T any](v T) *T { return &v }

// listingFixture returns a domain.Listing with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func listingFixture() domain.Listing {
	return domain.Listing{
		OwnerID:     "auth0|owner-1",
		Title:       "Diseño Web",
		Description: "Sitios web para pequeños negocios",
		PriceMin:    ptr(int64(200000)),
		PriceMax:    ptr(int64(1500000)),
		City:        "Cali",
		State:       "Valle del Cauca",
		Country:     "Colombia",
		Latitude:    ptr(3.4516),
		Longitude:   ptr(-76.5320),
		ImageURLs:   []string{"https://cdn.example.com/a.jpg"},
	}
}

func mustCreateListing(t *testing.T, r repo.ListingRepo, l domain.Listing) domain.Listing {
	t.Helper()
	created, err := r.Create(context.Background(), l)
	require.NoError(t, err)
	return created
}
