package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AuditType string

const (
	AuditProductSold     AuditType = "product_sold"
	AuditInventoryChange AuditType = "inventory_change"
	AuditUserActivity    AuditType = "user_activity"
	AuditBackup          AuditType = "backup"
	AuditPurchaseOrder   AuditType = "purchase_order"
)

// AuditPayload is implemented by every audit variant. The variant decides
// the record's type tag.
type AuditPayload interface {
	AuditType() AuditType
}

type ProductSold struct {
	SaleID    string          `json:"saleId"`
	StoreID   string          `json:"storeId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

func (ProductSold) AuditType() AuditType { return AuditProductSold }

// InventoryChange records product creation, edits, deletions and quantity
// moves. Before is nil for creations, After is nil for deletions.
type InventoryChange struct {
	Action    string         `json:"action"`
	ProductID string         `json:"productId"`
	StoreID   string         `json:"storeId"`
	Before    *ProductFields `json:"before,omitempty"`
	After     *ProductFields `json:"after,omitempty"`
}

func (InventoryChange) AuditType() AuditType { return AuditInventoryChange }

type ProductFields struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func FieldsOf(p *Product) *ProductFields {
	if p == nil {
		return nil
	}
	return &ProductFields{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

type UserActivity struct {
	Action   string `json:"action"` // login, login_failed, password_changed, user_added, user_removed
	Username string `json:"username"`
	Role     Role   `json:"role,omitempty"`
}

func (UserActivity) AuditType() AuditType { return AuditUserActivity }

type BackupEvent struct {
	Action  string `json:"action"` // local_backup, local_restore, remote_backup, remote_restore
	StoreID string `json:"storeId,omitempty"`
	Version int    `json:"version"`
}

func (BackupEvent) AuditType() AuditType { return AuditBackup }

type PurchaseOrderEvent struct {
	Action          string          `json:"action"` // placed, confirmed
	PurchaseOrderID string          `json:"purchaseOrderId"`
	SupplierID      string          `json:"supplierId"`
	StoreID         string          `json:"storeId"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

func (PurchaseOrderEvent) AuditType() AuditType { return AuditPurchaseOrder }

// Audit is an append-only log record. Data holds the encoded payload.
type Audit struct {
	ID        string          `db:"id" json:"id"`
	Type      AuditType       `db:"type" json:"type"`
	Data      json.RawMessage `db:"data" json:"data"`
	Timestamp time.Time       `db:"timestamp" json:"timestamp"`
}

// Payload decodes Data into the variant named by Type.
func (a *Audit) Payload() (AuditPayload, error) {
	var p AuditPayload
	switch a.Type {
	case AuditProductSold:
		p = &ProductSold{}
	case AuditInventoryChange:
		p = &InventoryChange{}
	case AuditUserActivity:
		p = &UserActivity{}
	case AuditBackup:
		p = &BackupEvent{}
	case AuditPurchaseOrder:
		p = &PurchaseOrderEvent{}
	default:
		return nil, fmt.Errorf("unknown audit type %q", a.Type)
	}
	if err := json.Unmarshal(a.Data, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", a.Type, err)
	}
	return p, nil
}
