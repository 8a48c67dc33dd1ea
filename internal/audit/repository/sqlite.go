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

func (r *SQLiteRepository) Create(ctx context.Context, a *model.Audit) error {
	query := `INSERT INTO audits (id, type, data, timestamp) VALUES (:id, :type, :data, :timestamp)`
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, a)
	return err
}

// List returns newest first.
func (r *SQLiteRepository) List(ctx context.Context, offset, limit int) ([]model.Audit, error) {
	audits := []model.Audit{}
	query := `SELECT * FROM audits ORDER BY timestamp DESC, rowid DESC LIMIT ? OFFSET ?`
	err := r.DB.Querier(ctx).SelectContext(ctx, &audits, query, limit, offset)
	return audits, err
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.Querier(ctx).GetContext(ctx, &count, `SELECT count(*) FROM audits`)
	return count, err
}
