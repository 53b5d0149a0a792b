package sqlite_test

import (
	"testing"

	"github.com/apehex/homespace/sqlite"
	"github.com/stretchr/testify/require"
)

// MustOpenDB returns a new, open in-memory DB. Fatal on error.
func MustOpenDB(tb testing.TB) *sqlite.DB {
	tb.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(tb, db.Open())

	tb.Cleanup(func() {
		require.NoError(tb, db.Close())
	})
	return db
}

func TestDB_OpenClose(t *testing.T) {
	t.Parallel()

	MustOpenDB(t)
}

func TestDB_SchemaIsIdempotent(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())

	// Reopening runs createSchema again.
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())
}
