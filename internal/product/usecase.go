package product

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/product/dto"
)

type UseCase interface {
	AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	// GetProducts pages through a store's products in insertion order. Page
	// is 1-based.
	GetProducts(ctx context.Context, storeID string, page, pageSize int) ([]model.Product, error)
	GetProductsCount(ctx context.Context, storeID string) (int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// SearchProducts matches the tag exactly and falls back to a
	// case-insensitive name prefix when no tag matches.
	SearchProducts(ctx context.Context, storeID, term string) ([]model.Product, error)
	SearchProductsByBarcode(ctx context.Context, storeID, barcode string) ([]model.Product, error)

	AddRecentSearch(ctx context.Context, storeID, term string) (*model.RecentSearch, error)
	GetRecentSearches(ctx context.Context, storeID string) ([]model.RecentSearch, error)
}
