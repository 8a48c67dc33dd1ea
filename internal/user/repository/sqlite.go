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

func (r *SQLiteRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, password_hash, role, created_at)
        VALUES (:id, :username, :password_hash, :role, :created_at)
    `
	_, err := r.DB.Querier(ctx).NamedExecContext(ctx, query, u)
	return err
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.Querier(ctx).GetContext(ctx, &u, `SELECT * FROM users WHERE username = ? LIMIT 1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.Querier(ctx).GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.Querier(ctx).SelectContext(ctx, &users, `SELECT * FROM users ORDER BY username ASC`)
	return users, err
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.DB.Querier(ctx).ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Querier(ctx).ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.DB.Querier(ctx).GetContext(ctx, &count, `SELECT count(*) FROM users WHERE role = ?`, role)
	return count, err
}
