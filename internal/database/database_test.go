package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), &Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func columns(t *testing.T, db *DB, table string) []string {
	t.Helper()
	var cols []string
	err := db.SelectContext(context.Background(), &cols, `SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	return cols
}

func TestMigrateFreshAndIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	v, err := db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Migrations), v)

	v, err = db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Migrations), v)

	var applied int
	require.NoError(t, db.GetContext(ctx, &applied, `SELECT count(*) FROM schema_migrations`))
	assert.Equal(t, len(Migrations), applied)
}

func TestMigrationsApplyOneStepAtATime(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	v, err := db.migrate(ctx, Migrations[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.NotContains(t, columns(t, db, "stores"), "backup_version")
	assert.Empty(t, columns(t, db, "users"))

	v, err = db.migrate(ctx, Migrations[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Contains(t, columns(t, db, "users"), "password_hash")

	v, err = db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Contains(t, columns(t, db, "stores"), "backup_version")
	assert.Contains(t, columns(t, db, "purchase_orders"), "confirmed_at")
}

func TestMigrateRejectsGaps(t *testing.T) {
	db := openTestDB(t)

	_, err := db.migrate(context.Background(), []Migration{Migrations[0], Migrations[2]})
	assert.ErrorContains(t, err, "out of order")

	v, err := db.CurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := db.Migrate(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.RunInTx(ctx, func(ctx context.Context) error {
		_, err := db.Querier(ctx).ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ('c1', 'Snacks')`)
		require.NoError(t, err)

		// nested call joins the same transaction
		return db.RunInTx(ctx, func(ctx context.Context) error {
			var n int
			require.NoError(t, db.Querier(ctx).GetContext(ctx, &n, `SELECT count(*) FROM categories`))
			assert.Equal(t, 1, n)
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT count(*) FROM categories`))
	assert.Equal(t, 0, n)
}

func TestQuantityCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := db.Migrate(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO products (id, store_id, name, quantity, created_at, updated_at)
		VALUES ('p1', 's1', 'Widget', -1, datetime('now'), datetime('now'))`)
	assert.Error(t, err)
}

func TestFoldLowersUnicode(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var got string
	require.NoError(t, db.GetContext(ctx, &got, `SELECT fold(?)`, "ÉCLAIR Öl"))
	assert.Equal(t, "éclair öl", got)

	var null *string
	require.NoError(t, db.GetContext(ctx, &null, `SELECT fold(NULL)`))
	assert.Nil(t, null)
}
