package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, store_id, user_defined_id, name, description,
            price, quantity, category_id, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :user_defined_id, :name, :description,
            :price, :quantity, :category_id, :created_at, :updated_at
        )
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, p)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.DB.Querier(ctx).GetContext(ctx, &product, `SELECT * FROM products WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *SQLiteRepository) FindByStore(ctx context.Context, storeID string, offset, limit int) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products WHERE store_id = ? ORDER BY rowid LIMIT ? OFFSET ?`
	err := r.DB.Querier(ctx).SelectContext(ctx, &products, query, storeID, limit, offset)
	return products, err
}

func (r *SQLiteRepository) CountByStore(ctx context.Context, storeID string) (int, error) {
	var count int
	err := r.DB.Querier(ctx).GetContext(ctx, &count, `SELECT count(*) FROM products WHERE store_id = ?`, storeID)
	return count, err
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            quantity = :quantity,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, p)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Querier(ctx).ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) FindByTag(ctx context.Context, storeID, tag string) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE user_defined_id = ?`
	args := []interface{}{tag}
	if storeID != "" {
		query += ` AND store_id = ?`
		args = append(args, storeID)
	}
	query += ` ORDER BY rowid`

	products := []model.Product{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *SQLiteRepository) FindByNamePrefix(ctx context.Context, storeID, prefix string) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE fold(name) LIKE ? ESCAPE '\'`
	args := []interface{}{escapeLike(strings.ToLower(prefix)) + "%"}
	if storeID != "" {
		query += ` AND store_id = ?`
		args = append(args, storeID)
	}
	query += ` ORDER BY rowid`

	products := []model.Product{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *SQLiteRepository) IsKeyUnique(ctx context.Context, storeID, name, tag, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = ? AND name = ? AND user_defined_id = ?`
	args := []interface{}{storeID, name, tag}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	err := r.DB.Querier(ctx).GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *SQLiteRepository) CreateRecentSearch(ctx context.Context, s *model.RecentSearch) error {
	query := `
        INSERT INTO recent_searches (id, store_id, search_term, timestamp)
        VALUES (:id, :store_id, :search_term, :timestamp)
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, s)
	return err
}

// ListRecentSearches returns newest first.
func (r *SQLiteRepository) ListRecentSearches(ctx context.Context, storeID string, limit int) ([]model.RecentSearch, error) {
	searches := []model.RecentSearch{}
	query := `SELECT * FROM recent_searches WHERE store_id = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`
	err := r.DB.Querier(ctx).SelectContext(ctx, &searches, query, storeID, limit)
	return searches, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
