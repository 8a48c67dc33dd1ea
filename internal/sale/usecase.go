package sale

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/sale/dto"
)

type UseCase interface {
	// SellProduct returns nil without error when the product does not exist
	// or has too little stock; nothing is written in that case.
	SellProduct(ctx context.Context, input *dto.SellProductInput) (*model.Sale, error)
	// GetSales returns newest sales first. Page is 1-based.
	GetSales(ctx context.Context, storeID string, page, pageSize int) (*dto.SalesPage, error)
}
