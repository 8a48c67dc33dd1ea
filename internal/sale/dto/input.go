package dto

import "github.com/fekuna/omnipos-local/internal/model"

type SellProductInput struct {
	StoreID   string `json:"storeId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type SalesPage struct {
	Total int                     `json:"total"`
	Sales []model.SaleWithProduct `json:"sales"`
}
