package repository

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/model"
)

type SQLiteRepository struct {
	DB *database.DB
}

func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *model.Customer) error {
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, `INSERT INTO customers (id, name, email) VALUES (:id, :name, :email)`, c)
	return err
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &customers, `SELECT * FROM customers ORDER BY rowid`)
	return customers, err
}
