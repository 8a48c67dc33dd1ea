package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-local/internal/apperr"
	auditrepo "github.com/fekuna/omnipos-local/internal/audit/repository"
	audituc "github.com/fekuna/omnipos-local/internal/audit/usecase"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/inventory"
	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/inventory/repository"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	productrepo "github.com/fekuna/omnipos-local/internal/product/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeID = "store-1"

type fixture struct {
	uc       inventory.UseCase
	products *productrepo.SQLiteRepository
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	log := logger.NewNop()
	auditUC := audituc.NewAuditUseCase(auditrepo.NewSQLiteRepository(db), log)
	return &fixture{
		uc:       NewInventoryUseCase(repository.NewSQLiteRepository(db), db, auditUC, 0, log),
		products: productrepo.NewSQLiteRepository(db),
	}
}

func (f *fixture) seed(t *testing.T, name string, qty int) *model.Product {
	t.Helper()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		StoreID:   storeID,
		Name:      name,
		Price:     decimal.NewFromInt(1),
		Quantity:  qty,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestCheckLowStockBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, "five", 5)
	f.seed(t, "six", 6)
	f.seed(t, "seven", 7)
	f.seed(t, "zero", 0)

	low, err := f.uc.CheckLowStock(ctx, storeID, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"five", "zero"}, names(low))

	low, err = f.uc.CheckInventoryLevels(ctx, storeID, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"five", "six", "zero"}, names(low))

	low, err = f.uc.CheckLowStock(ctx, "other-store", 6)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestUpdateProductQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "soap", 4)

	updated, err := f.uc.UpdateProductQuantity(ctx, &dto.AdjustQuantityInput{ProductID: p.ID, NewQuantity: 40})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Quantity)

	stored, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Quantity)

	_, err = f.uc.UpdateProductQuantity(ctx, &dto.AdjustQuantityInput{ProductID: p.ID, NewQuantity: -1})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.uc.UpdateProductQuantity(ctx, &dto.AdjustQuantityInput{ProductID: "missing", NewQuantity: 1})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGetFilteredProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, "Green Tea", 3)
	f.seed(t, "Black Tea", 10)
	f.seed(t, "Coffee", 5)
	f.seed(t, "Steam_ed Milk", 1)

	all, err := f.uc.GetFilteredProducts(ctx, &dto.ProductFilters{StoreID: storeID})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	tea, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{StoreID: storeID}).WithName("TEA"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Green Tea", "Black Tea"}, names(tea))

	ranged, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{StoreID: storeID}).WithMinQuantity(3).WithMaxQuantity(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"Green Tea", "Coffee"}, names(ranged))

	combined, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{}).WithName("tea").WithMinQuantity(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"Black Tea"}, names(combined))

	literal, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{}).WithName("_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Steam_ed Milk"}, names(literal))

	empty, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{}).WithMinQuantity(9).WithMaxQuantity(2))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetFilteredProductsFoldsNonASCII(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, "Crème Brûlée", 2)
	f.seed(t, "ÖLFILTER", 4)
	f.seed(t, "Coffee", 5)

	creme, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{StoreID: storeID}).WithName("BRÛLÉE"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Crème Brûlée"}, names(creme))

	oil, err := f.uc.GetFilteredProducts(ctx, (&dto.ProductFilters{StoreID: storeID}).WithName("ölfil"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ÖLFILTER"}, names(oil))
}
