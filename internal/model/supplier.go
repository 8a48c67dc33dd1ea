package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type PurchaseOrderItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// PurchaseOrderItems is stored as a JSON document in a single column.
type PurchaseOrderItems []PurchaseOrderItem

func (it PurchaseOrderItems) Value() (driver.Value, error) {
	if it == nil {
		return "[]", nil
	}
	b, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (it *PurchaseOrderItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*it = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("purchase order items: unsupported type %T", src)
	}
	return json.Unmarshal(raw, it)
}

type PurchaseOrder struct {
	ID          string             `db:"id" json:"id"`
	SupplierID  string             `db:"supplier_id" json:"supplierId"`
	StoreID     string             `db:"store_id" json:"storeId"`
	Items       PurchaseOrderItems `db:"items" json:"items"`
	TotalCost   decimal.Decimal    `db:"total_cost" json:"totalCost"`
	PlacedAt    time.Time          `db:"placed_at" json:"placedAt"`
	Confirmed   bool               `db:"confirmed" json:"confirmed"`
	ConfirmedAt *time.Time         `db:"confirmed_at" json:"confirmedAt"`
}
