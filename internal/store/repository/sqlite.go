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

func (r *SQLiteRepository) Create(ctx context.Context, s *model.Store) error {
	query := `
        INSERT INTO stores (id, name, address, phone, email, backup_version, created_at, updated_at)
        VALUES (:id, :name, :address, :phone, :email, :backup_version, :created_at, :updated_at)
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, s)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	err := r.DB.Querier(ctx).GetContext(ctx, &s, `SELECT * FROM stores WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Store, error) {
	stores := []model.Store{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &stores, `SELECT * FROM stores ORDER BY rowid`)
	return stores, err
}

func (r *SQLiteRepository) Update(ctx context.Context, s *model.Store) error {
	query := `
        UPDATE stores
        SET name = :name,
            address = :address,
            phone = :phone,
            email = :email,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, s)
	return err
}

// IncrementBackupVersion bumps the counter and returns the new value.
// It returns sql.ErrNoRows when the store does not exist.
func (r *SQLiteRepository) IncrementBackupVersion(ctx context.Context, id string) (int, error) {
	var version int
	query := `UPDATE stores SET backup_version = backup_version + 1, updated_at = ? WHERE id = ? RETURNING backup_version`
	err := r.DB.Querier(ctx).GetContext(ctx, &version, query, time.Now().UTC(), id)
	return version, err
}

func (r *SQLiteRepository) SetBackupVersion(ctx context.Context, id string, version int) error {
	res, err := r.DB.Querier(ctx).ExecContext(ctx,
		`UPDATE stores SET backup_version = ?, updated_at = ? WHERE id = ?`, version, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MaxBackupVersion is 0 on an empty installation.
func (r *SQLiteRepository) MaxBackupVersion(ctx context.Context) (int, error) {
	var v int
	err := r.DB.Querier(ctx).GetContext(ctx, &v, `SELECT COALESCE(MAX(backup_version), 0) FROM stores`)
	return v, err
}
