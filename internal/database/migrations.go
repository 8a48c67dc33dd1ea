package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Migration is one additive schema step. Up must only add tables, columns or
// indexes so older backups stay readable.
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, tx *sqlx.Tx) error
}

// Migrations are applied in slice order. Never edit a released step; append.
var Migrations = []Migration{
	{Version: 1, Name: "create_catalog_and_sales", Up: execAll(
		`CREATE TABLE IF NOT EXISTS stores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			user_defined_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			category_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_products_store_name_tag ON products (store_id, name, user_defined_id)`,
		`CREATE INDEX IF NOT EXISTS ix_products_store ON products (store_id)`,
		`CREATE INDEX IF NOT EXISTS ix_products_tag ON products (user_defined_id)`,
		`CREATE INDEX IF NOT EXISTS ix_products_quantity ON products (quantity)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price TEXT NOT NULL,
			total TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_sales_store ON sales (store_id)`,
		`CREATE TABLE IF NOT EXISTS recent_searches (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			search_term TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_recent_searches_store ON recent_searches (store_id)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT ''
		)`,
	)},
	{Version: 2, Name: "create_users_audits_suppliers", Up: execAll(
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin', 'user')),
			created_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_username ON users (username)`,
		`CREATE TABLE IF NOT EXISTS audits (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			data BLOB NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_audits_timestamp ON audits (timestamp)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_orders (
			id TEXT PRIMARY KEY,
			supplier_id TEXT NOT NULL,
			store_id TEXT NOT NULL,
			items TEXT NOT NULL DEFAULT '[]',
			total_cost TEXT NOT NULL DEFAULT '0',
			placed_at DATETIME NOT NULL,
			confirmed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS ix_purchase_orders_store ON purchase_orders (store_id)`,
	)},
	{Version: 3, Name: "add_store_profile_and_backup_version", Up: execAll(
		`ALTER TABLE stores ADD COLUMN address TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE stores ADD COLUMN phone TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE stores ADD COLUMN email TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE stores ADD COLUMN backup_version INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE purchase_orders ADD COLUMN confirmed_at DATETIME`,
	)},
}

func execAll(stmts ...string) func(ctx context.Context, tx *sqlx.Tx) error {
	return func(ctx context.Context, tx *sqlx.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

func (db *DB) ensureMigrationTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME NOT NULL
	)`)
	return err
}

// CurrentVersion reports the last applied migration, 0 for a fresh file.
func (db *DB) CurrentVersion(ctx context.Context) (int, error) {
	if err := db.ensureMigrationTable(ctx); err != nil {
		return 0, err
	}
	var v int
	err := db.GetContext(ctx, &v, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	return v, err
}

// Migrate applies every pending step, each in its own transaction together
// with its version marker. It returns the resulting schema version.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	return db.migrate(ctx, Migrations)
}

func (db *DB) migrate(ctx context.Context, steps []Migration) (int, error) {
	current, err := db.CurrentVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range steps {
		if m.Version <= current {
			continue
		}
		if m.Version != current+1 {
			return current, fmt.Errorf("migration %d (%s) out of order, schema is at %d", m.Version, m.Name, current)
		}

		err := db.RunInTx(ctx, func(ctx context.Context) error {
			tx := db.Querier(ctx).(*sqlx.Tx)
			if err := m.Up(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
				m.Version, m.Name, time.Now().UTC())
			return err
		})
		if err != nil {
			return current, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		current = m.Version
	}
	return current, nil
}
