package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	StoreID       string          `json:"storeId" validate:"required"`
	UserDefinedID string          `json:"userDefinedId" validate:"max=100"`
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	CategoryID    *string         `json:"categoryId"`
}

// UpdateProductInput replaces the editable fields of a product. The tag and
// store never change after creation.
type UpdateProductInput struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
}
