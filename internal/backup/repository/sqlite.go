package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Dump(ctx context.Context) (*backup.Snapshot, error) {
	s := &backup.Snapshot{}
	q := r.DB.Querier(ctx)

	tables := []struct {
		name string
		dest interface{}
	}{
		{"stores", &s.Stores},
		{"products", &s.Products},
		{"sales", &s.Sales},
		{"recent_searches", &s.RecentSearches},
		{"categories", &s.Categories},
		{"customers", &s.Customers},
		{"users", &s.Users},
		{"suppliers", &s.Suppliers},
		{"purchase_orders", &s.PurchaseOrders},
	}
	for _, t := range tables {
		if err := q.SelectContext(ctx, t.dest, "SELECT * FROM "+t.name+" ORDER BY rowid"); err != nil {
			return nil, fmt.Errorf("dump %s: %w", t.name, err)
		}
	}
	fillEmpty(s)
	return s, nil
}

const (
	upsertStore = `
        INSERT OR REPLACE INTO stores (id, name, address, phone, email, backup_version, created_at, updated_at)
        VALUES (:id, :name, :address, :phone, :email, :backup_version, :created_at, :updated_at)
    `
	upsertProduct = `
        INSERT OR REPLACE INTO products (
            id, store_id, user_defined_id, name, description,
            price, quantity, category_id, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :user_defined_id, :name, :description,
            :price, :quantity, :category_id, :created_at, :updated_at
        )
    `
	upsertSale = `
        INSERT OR REPLACE INTO sales (id, store_id, product_id, quantity, unit_price, total, timestamp)
        VALUES (:id, :store_id, :product_id, :quantity, :unit_price, :total, :timestamp)
    `
	upsertRecentSearch = `
        INSERT OR REPLACE INTO recent_searches (id, store_id, search_term, timestamp)
        VALUES (:id, :store_id, :search_term, :timestamp)
    `
	upsertCategory = `INSERT OR REPLACE INTO categories (id, name) VALUES (:id, :name)`
	upsertCustomer = `INSERT OR REPLACE INTO customers (id, name, email) VALUES (:id, :name, :email)`
	upsertUser     = `
        INSERT OR REPLACE INTO users (id, username, password_hash, role, created_at)
        VALUES (:id, :username, :password_hash, :role, :created_at)
    `
	upsertSupplier = `
        INSERT OR REPLACE INTO suppliers (id, name, email, phone, address, created_at)
        VALUES (:id, :name, :email, :phone, :address, :created_at)
    `
	upsertPurchaseOrder = `
        INSERT OR REPLACE INTO purchase_orders (
            id, supplier_id, store_id, items, total_cost, placed_at, confirmed, confirmed_at
        )
        VALUES (
            :id, :supplier_id, :store_id, :items, :total_cost, :placed_at, :confirmed, :confirmed_at
        )
    `
)

// Load must run inside a transaction for the restore to be all or nothing.
func (r *SQLiteRepository) Load(ctx context.Context, s *backup.Snapshot) error {
	q := r.DB.Querier(ctx)

	if err := upsertAll(ctx, q, "stores", upsertStore, s.Stores); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "products", upsertProduct, s.Products); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "sales", upsertSale, s.Sales); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "recent_searches", upsertRecentSearch, s.RecentSearches); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "categories", upsertCategory, s.Categories); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "customers", upsertCustomer, s.Customers); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "users", upsertUser, s.Users); err != nil {
		return err
	}
	if err := upsertAll(ctx, q, "suppliers", upsertSupplier, s.Suppliers); err != nil {
		return err
	}
	return upsertAll(ctx, q, "purchase_orders", upsertPurchaseOrder, s.PurchaseOrders)
}

func upsertAll[T any](ctx context.Context, q database.Querier, table, query string, rows []T) error {
	for i := range rows {
		if _, err := q.NamedExecContext(ctx, query, &rows[i]); err != nil {
			return fmt.Errorf("restore %s: %w", table, err)
		}
	}
	return nil
}

// fillEmpty keeps empty collections as [] in the encoded snapshot.
func fillEmpty(s *backup.Snapshot) {
	if s.Stores == nil {
		s.Stores = []model.Store{}
	}
	if s.Products == nil {
		s.Products = []model.Product{}
	}
	if s.Sales == nil {
		s.Sales = []model.Sale{}
	}
	if s.RecentSearches == nil {
		s.RecentSearches = []model.RecentSearch{}
	}
	if s.Categories == nil {
		s.Categories = []model.Category{}
	}
	if s.Customers == nil {
		s.Customers = []model.Customer{}
	}
	if s.Users == nil {
		s.Users = []model.User{}
	}
	if s.Suppliers == nil {
		s.Suppliers = []model.Supplier{}
	}
	if s.PurchaseOrders == nil {
		s.PurchaseOrders = []model.PurchaseOrder{}
	}
}
