package dto

import "github.com/fekuna/omnipos-local/internal/model"

type CreateSupplierInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address"`
}

// PlacePurchaseOrderInput leaves TotalCost to be derived from the items.
type PlacePurchaseOrderInput struct {
	SupplierID string                    `json:"supplierId" validate:"required"`
	StoreID    string                    `json:"storeId" validate:"required"`
	Items      []model.PurchaseOrderItem `json:"items" validate:"required,min=1,dive"`
}
