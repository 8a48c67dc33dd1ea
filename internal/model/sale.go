package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale snapshots quantity and price at the time of sale; later product
// edits never change it.
type Sale struct {
	ID        string          `db:"id" json:"id"`
	StoreID   string          `db:"store_id" json:"storeId"`
	ProductID string          `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Total     decimal.Decimal `db:"total" json:"total"`
	Timestamp time.Time       `db:"timestamp" json:"timestamp"`
}

// SaleWithProduct is a sale joined with its product. Product is nil when the
// product has since been deleted.
type SaleWithProduct struct {
	Sale
	Product *Product `json:"product"`
}
