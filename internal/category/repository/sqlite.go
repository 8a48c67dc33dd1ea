package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, `INSERT INTO categories (id, name) VALUES (:id, :name)`, c)
	return err
}

func (r *SQLiteRepository) CreateMany(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.DB.RunInTx(ctx, func(ctx context.Context) error {
		q := r.DB.Querier(ctx)
		for i := range categories {
			_, err := q.NamedExecContext(ctx, `INSERT OR IGNORE INTO categories (id, name) VALUES (:id, :name)`, &categories[i])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.DB.Querier(ctx).GetContext(ctx, &c, `SELECT * FROM categories WHERE name = ? LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &categories, `SELECT * FROM categories ORDER BY name ASC`)
	return categories, err
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.Querier(ctx).GetContext(ctx, &count, `SELECT count(*) FROM categories`)
	return count, err
}
