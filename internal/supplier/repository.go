package supplier

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
	FindAll(ctx context.Context) ([]model.Supplier, error)

	CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error
	FindPurchaseOrder(ctx context.Context, id string) (*model.PurchaseOrder, error)
	FindPurchaseOrdersByStore(ctx context.Context, storeID string) ([]model.PurchaseOrder, error)
	// MarkConfirmed only changes an unconfirmed order and reports whether it
	// did.
	MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error)
}
