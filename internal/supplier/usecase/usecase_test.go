package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-local/internal/apperr"
	auditrepo "github.com/fekuna/omnipos-local/internal/audit/repository"
	audituc "github.com/fekuna/omnipos-local/internal/audit/usecase"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/supplier"
	"github.com/fekuna/omnipos-local/internal/supplier/dto"
	"github.com/fekuna/omnipos-local/internal/supplier/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUseCase(t *testing.T) supplier.UseCase {
	db := dbtest.New(t)
	log := logger.NewNop()
	auditUC := audituc.NewAuditUseCase(auditrepo.NewSQLiteRepository(db), log)
	return NewSupplierUseCase(repository.NewSQLiteRepository(db), db, auditUC, log)
}

func TestAddSupplier(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: "Zeta Foods", Email: "orders@zeta.test"})
	require.NoError(t, err)
	_, err = uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: "Acme Wholesale"})
	require.NoError(t, err)

	_, err = uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: ""})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: "Bad", Email: "not-an-email"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	suppliers, err := uc.GetSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Acme Wholesale", suppliers[0].Name)
}

func TestPlaceAndConfirmPurchaseOrder(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	s, err := uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: "Acme"})
	require.NoError(t, err)

	po, err := uc.PlacePurchaseOrder(ctx, &dto.PlacePurchaseOrderInput{
		SupplierID: s.ID,
		StoreID:    "store-1",
		Items: []model.PurchaseOrderItem{
			{Name: "Rice 5kg", Quantity: 4, UnitCost: decimal.RequireFromString("7.25")},
			{Name: "Oil 1L", Quantity: 10, UnitCost: decimal.RequireFromString("2")},
		},
	})
	require.NoError(t, err)
	assert.True(t, po.TotalCost.Equal(decimal.RequireFromString("49")))
	assert.False(t, po.Confirmed)

	orders, err := uc.GetPurchaseOrders(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Rice 5kg", orders[0].Items[0].Name)
	assert.True(t, orders[0].Items[0].UnitCost.Equal(decimal.RequireFromString("7.25")))

	confirmed, err := uc.ConfirmPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.Confirmed)
	require.NotNil(t, confirmed.ConfirmedAt)

	_, err = uc.ConfirmPurchaseOrder(ctx, po.ID)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.ConfirmPurchaseOrder(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	orders, err = uc.GetPurchaseOrders(ctx, "store-1")
	require.NoError(t, err)
	assert.True(t, orders[0].Confirmed)
}

func TestPlacePurchaseOrderValidation(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	s, err := uc.AddSupplier(ctx, &dto.CreateSupplierInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.PlacePurchaseOrder(ctx, &dto.PlacePurchaseOrderInput{SupplierID: s.ID, StoreID: "store-1"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.PlacePurchaseOrder(ctx, &dto.PlacePurchaseOrderInput{
		SupplierID: s.ID,
		StoreID:    "store-1",
		Items:      []model.PurchaseOrderItem{{Name: "Salt", Quantity: 0}},
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.PlacePurchaseOrder(ctx, &dto.PlacePurchaseOrderInput{
		SupplierID: s.ID,
		StoreID:    "store-1",
		Items:      []model.PurchaseOrderItem{{Name: "Salt", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}},
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.PlacePurchaseOrder(ctx, &dto.PlacePurchaseOrderInput{
		SupplierID: "missing",
		StoreID:    "store-1",
		Items:      []model.PurchaseOrderItem{{Name: "Salt", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
