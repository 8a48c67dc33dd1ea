package supplier

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/supplier/dto"
)

type UseCase interface {
	AddSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error)
	GetSuppliers(ctx context.Context) ([]model.Supplier, error)
	PlacePurchaseOrder(ctx context.Context, input *dto.PlacePurchaseOrderInput) (*model.PurchaseOrder, error)
	GetPurchaseOrders(ctx context.Context, storeID string) ([]model.PurchaseOrder, error)
	// ConfirmPurchaseOrder is one-way and leaves stock untouched.
	ConfirmPurchaseOrder(ctx context.Context, id string) (*model.PurchaseOrder, error)
}
