package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *model.Supplier) error {
	query := `
        INSERT INTO suppliers (id, name, email, phone, address, created_at)
        VALUES (:id, :name, :email, :phone, :address, :created_at)
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, s)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.DB.Querier(ctx).GetContext(ctx, &s, `SELECT * FROM suppliers WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Supplier, error) {
	suppliers := []model.Supplier{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &suppliers, `SELECT * FROM suppliers ORDER BY name ASC`)
	return suppliers, err
}

func (r *SQLiteRepository) CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error {
	query := `
        INSERT INTO purchase_orders (
            id, supplier_id, store_id, items, total_cost, placed_at, confirmed, confirmed_at
        )
        VALUES (
            :id, :supplier_id, :store_id, :items, :total_cost, :placed_at, :confirmed, :confirmed_at
        )
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, po)
	return err
}

func (r *SQLiteRepository) FindPurchaseOrder(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.DB.Querier(ctx).GetContext(ctx, &po, `SELECT * FROM purchase_orders WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &po, nil
}

// FindPurchaseOrdersByStore returns newest first.
func (r *SQLiteRepository) FindPurchaseOrdersByStore(ctx context.Context, storeID string) ([]model.PurchaseOrder, error) {
	orders := []model.PurchaseOrder{}
	query := `SELECT * FROM purchase_orders WHERE store_id = ? ORDER BY placed_at DESC, rowid DESC`
	err := r.DB.Querier(ctx).SelectContext(ctx, &orders, query, storeID)
	return orders, err
}

func (r *SQLiteRepository) MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.DB.Querier(ctx).ExecContext(ctx,
		`UPDATE purchase_orders SET confirmed = 1, confirmed_at = ? WHERE id = ? AND confirmed = 0`, at, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
