package remote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-local/internal/backup"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *backup.Snapshot {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	categoryID := "cat-1"
	return &backup.Snapshot{
		Stores: []model.Store{{
			BaseModel:     model.BaseModel{ID: "store-1", CreatedAt: at, UpdatedAt: at},
			Name:          "Corner Shop",
			Email:         "owner@example.com",
			BackupVersion: 4,
		}},
		Products: []model.Product{{
			BaseModel:     model.BaseModel{ID: "p-1", CreatedAt: at, UpdatedAt: at},
			StoreID:       "store-1",
			UserDefinedID: "4006381333931",
			Name:          "Éclair Box",
			Price:         decimal.RequireFromString("3.75"),
			Quantity:      12,
			CategoryID:    &categoryID,
		}},
		Sales: []model.Sale{{
			ID:        "s-1",
			StoreID:   "store-1",
			ProductID: "p-1",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("3.75"),
			Total:     decimal.RequireFromString("7.5"),
			Timestamp: at,
		}},
		RecentSearches: []model.RecentSearch{},
		Categories:     []model.Category{{ID: categoryID, Name: "Bakery"}},
		Customers:      []model.Customer{},
		Users:          []model.User{{ID: "u-1", Username: "admin", PasswordHash: "$2a$10$hash", Role: model.RoleAdmin, CreatedAt: at}},
		Suppliers:      []model.Supplier{},
		PurchaseOrders: []model.PurchaseOrder{{
			ID:         "po-1",
			SupplierID: "sup-1",
			StoreID:    "store-1",
			Items:      model.PurchaseOrderItems{{Name: "Flour", Quantity: 3, UnitCost: decimal.RequireFromString("1.10")}},
			TotalCost:  decimal.RequireFromString("3.30"),
			PlacedAt:   at,
		}},
	}
}

func TestExtJSONRoundTrip(t *testing.T) {
	want := sampleSnapshot()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	raw, err := toBSON(data)
	require.NoError(t, err)
	require.NoError(t, raw.Validate())

	back, err := toJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(back))

	var got backup.Snapshot
	require.NoError(t, json.Unmarshal(back, &got))
	assert.Equal(t, 4, got.BackupVersion())
	require.Len(t, got.Products, 1)
	assert.True(t, want.Products[0].Price.Equal(got.Products[0].Price))
	assert.Equal(t, "cat-1", *got.Products[0].CategoryID)
	assert.Empty(t, got.Customers)
	assert.NotNil(t, got.Customers)
	assert.Nil(t, got.PurchaseOrders[0].ConfirmedAt)
}

func TestToBSONRejectsMalformedJSON(t *testing.T) {
	_, err := toBSON([]byte(`not json`))
	assert.Error(t, err)
}
