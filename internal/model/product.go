package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	StoreID       string          `db:"store_id" json:"storeId"`
	UserDefinedID string          `db:"user_defined_id" json:"userDefinedId"` // tag / barcode
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Quantity      int             `db:"quantity" json:"quantity"`
	CategoryID    *string         `db:"category_id" json:"categoryId"`
}

type RecentSearch struct {
	ID         string    `db:"id" json:"id"`
	StoreID    string    `db:"store_id" json:"storeId"`
	SearchTerm string    `db:"search_term" json:"searchTerm"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
}

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Customer is not linked to sales yet.
type Customer struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
