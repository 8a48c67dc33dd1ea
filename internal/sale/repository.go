package sale

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, sale *model.Sale) error
	// DecrementStock lowers a product's quantity only when enough stock is
	// left. It reports whether a row was changed.
	DecrementStock(ctx context.Context, productID string, quantity int) (bool, error)
	FindProduct(ctx context.Context, productID string) (*model.Product, error)
	FindProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	FindByStore(ctx context.Context, storeID string, offset, limit int) ([]model.Sale, error)
	CountByStore(ctx context.Context, storeID string) (int, error)
}
