package inventory

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	GetByProduct(ctx context.Context, productID string) (*model.Product, error)
	SetQuantity(ctx context.Context, productID string, quantity int) error

	// FindBelow returns products with quantity strictly below threshold.
	FindBelow(ctx context.Context, storeID string, threshold int) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
}
