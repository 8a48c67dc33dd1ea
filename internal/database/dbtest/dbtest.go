// Package dbtest opens throwaway migrated databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/stretchr/testify/require"
)

func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), &database.Config{
		Path: filepath.Join(t.TempDir(), "omnipos_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate(context.Background())
	require.NoError(t, err)
	return db
}
