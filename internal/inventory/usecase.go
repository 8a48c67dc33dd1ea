package inventory

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/model"
)

type UseCase interface {
	UpdateProductQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Product, error)
	CheckInventoryLevels(ctx context.Context, storeID string, threshold int) ([]model.Product, error)
	// CheckLowStock uses the configured default threshold when threshold <= 0.
	CheckLowStock(ctx context.Context, storeID string, threshold int) ([]model.Product, error)
	GetFilteredProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
}
