package store

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Store) error
	FindByID(ctx context.Context, id string) (*model.Store, error)
	FindAll(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, s *model.Store) error

	// Backup versioning
	IncrementBackupVersion(ctx context.Context, id string) (int, error)
	SetBackupVersion(ctx context.Context, id string, version int) error
	MaxBackupVersion(ctx context.Context) (int, error)
}
