package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *model.Sale) error {
	query := `
        INSERT INTO sales (id, store_id, product_id, quantity, unit_price, total, timestamp)
        VALUES (:id, :store_id, :product_id, :quantity, :unit_price, :total, :timestamp)
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, s)
	return err
}

func (r *SQLiteRepository) DecrementStock(ctx context.Context, productID string, quantity int) (bool, error) {
	query := `
        UPDATE products
        SET quantity = quantity - ?, updated_at = ?
        WHERE id = ? AND quantity >= ?
    `
	res, err := r.DB.Querier(ctx).ExecContext(ctx, query, quantity, time.Now().UTC(), productID, quantity)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *SQLiteRepository) FindProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := r.DB.Querier(ctx).GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) FindProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	q := r.DB.Querier(ctx)
	var items []model.Product
	err = q.SelectContext(ctx, &items, q.Rebind(query), args...)
	return items, err
}

// FindByStore returns newest first.
func (r *SQLiteRepository) FindByStore(ctx context.Context, storeID string, offset, limit int) ([]model.Sale, error) {
	sales := []model.Sale{}
	query := `SELECT * FROM sales WHERE store_id = ? ORDER BY timestamp DESC, rowid DESC LIMIT ? OFFSET ?`
	err := r.DB.Querier(ctx).SelectContext(ctx, &sales, query, storeID, limit, offset)
	return sales, err
}

func (r *SQLiteRepository) CountByStore(ctx context.Context, storeID string) (int, error) {
	var count int
	err := r.DB.Querier(ctx).GetContext(ctx, &count, `SELECT count(*) FROM sales WHERE store_id = ?`, storeID)
	return count, err
}
