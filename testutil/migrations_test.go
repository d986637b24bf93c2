package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/servimarket/migrations"
	"github.com/pkordes/servimarket/testutil"
)

var tables = []string{"categories", "listings", "reviews"}

// TestMigrations applies every migration, checks the tables exist, then rolls
// everything back and checks they are gone. Skipped without TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := migrations.NewProvider(db)
	require.NoError(t, err)

	// The repo package's TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, 3)
	for _, table := range tables {
		assert.True(t, tableExists(t, db, table), "expected table %q to exist", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range tables {
		assert.False(t, tableExists(t, db, table), "expected table %q to be dropped", table)
	}

	// Leave the schema in place for any package that runs after this one.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}
