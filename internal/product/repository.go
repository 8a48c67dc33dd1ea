package product

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByStore(ctx context.Context, storeID string, offset, limit int) ([]model.Product, error)
	CountByStore(ctx context.Context, storeID string) (int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// An empty storeID searches every store.
	FindByTag(ctx context.Context, storeID, tag string) ([]model.Product, error)
	FindByNamePrefix(ctx context.Context, storeID, prefix string) ([]model.Product, error)

	// Check (store, name, tag) uniqueness
	IsKeyUnique(ctx context.Context, storeID, name, tag, excludeID string) (bool, error)

	CreateRecentSearch(ctx context.Context, s *model.RecentSearch) error
	ListRecentSearches(ctx context.Context, storeID string, limit int) ([]model.RecentSearch, error)
}
