package category

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	// CreateMany skips names that already exist.
	CreateMany(ctx context.Context, categories []model.Category) error
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int, error)
}
