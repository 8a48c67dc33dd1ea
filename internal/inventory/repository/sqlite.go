package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) GetByProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := r.DB.Querier(ctx).GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller decides whether a missing product is an error
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) SetQuantity(ctx context.Context, productID string, quantity int) error {
	res, err := r.DB.Querier(ctx).ExecContext(ctx,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
		quantity, time.Now().UTC(), productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepository) FindBelow(ctx context.Context, storeID string, threshold int) ([]model.Product, error) {
	items := []model.Product{}
	query := `SELECT * FROM products WHERE store_id = ? AND quantity < ? ORDER BY quantity ASC, rowid`
	err := r.DB.Querier(ctx).SelectContext(ctx, &items, query, storeID, threshold)
	return items, err
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	items := []model.Product{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.Name != "" {
		conditions = append(conditions, `fold(name) LIKE :name ESCAPE '\'`)
		args["name"] = "%" + escapeLike(strings.ToLower(f.Name)) + "%"
	}
	if f.MinQuantity != nil {
		conditions = append(conditions, "quantity >= :min_quantity")
		args["min_quantity"] = *f.MinQuantity
	}
	if f.MaxQuantity != nil {
		conditions = append(conditions, "quantity <= :max_quantity")
		args["max_quantity"] = *f.MaxQuantity
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY rowid"
	nstmt, err := r.DB.Querier(ctx).PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
