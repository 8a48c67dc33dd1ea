package usecase

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/inventory"
	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/validation"
	"go.uber.org/zap"
)

const DefaultLowStockThreshold = 6

type inventoryUseCase struct {
	repo              inventory.Repository
	tx                database.Transactor
	audit             audit.UseCase
	logger            logger.ZapLogger
	lowStockThreshold int
}

func NewInventoryUseCase(repo inventory.Repository, tx database.Transactor, auditUC audit.UseCase, lowStockThreshold int, log logger.ZapLogger) inventory.UseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &inventoryUseCase{
		repo:              repo,
		tx:                tx,
		audit:             auditUC,
		logger:            log,
		lowStockThreshold: lowStockThreshold,
	}
}

var errProductMissing = errors.New("product missing")

func (uc *inventoryUseCase) UpdateProductQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Product, error) {
	if err := validation.Struct("inventory.UpdateProductQuantity", input); err != nil {
		return nil, err
	}

	var (
		p              *model.Product
		quantityBefore int
	)
	// Read and write under one transaction so a concurrent sale cannot slip
	// between them.
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.repo.GetByProduct(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return errProductMissing
		}
		quantityBefore = p.Quantity
		return uc.repo.SetQuantity(ctx, p.ID, input.NewQuantity)
	})
	if errors.Is(err, errProductMissing) {
		return nil, apperr.NotFound("inventory.UpdateProductQuantity", "product %s not found", input.ProductID)
	}
	if err != nil {
		uc.logger.Error("failed to update quantity", zap.String("product_id", input.ProductID), zap.Error(err))
		return nil, apperr.Storage("inventory.UpdateProductQuantity", err)
	}

	before := model.FieldsOf(p)
	before.Quantity = quantityBefore
	p.Quantity = input.NewQuantity

	uc.audit.LogAudit(ctx, model.InventoryChange{
		Action:    "quantity_updated",
		ProductID: p.ID,
		StoreID:   p.StoreID,
		Before:    before,
		After:     model.FieldsOf(p),
	})
	return p, nil
}

func (uc *inventoryUseCase) CheckInventoryLevels(ctx context.Context, storeID string, threshold int) ([]model.Product, error) {
	items, err := uc.repo.FindBelow(ctx, storeID, threshold)
	if err != nil {
		uc.logger.Error("failed to check inventory levels", zap.String("store_id", storeID), zap.Error(err))
		return nil, apperr.Storage("inventory.CheckInventoryLevels", err)
	}
	return items, nil
}

func (uc *inventoryUseCase) CheckLowStock(ctx context.Context, storeID string, threshold int) ([]model.Product, error) {
	if threshold <= 0 {
		threshold = uc.lowStockThreshold
	}
	items, err := uc.CheckInventoryLevels(ctx, storeID, threshold)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		uc.logger.Warn("products running low on stock",
			zap.String("store_id", storeID),
			zap.Int("threshold", threshold),
			zap.Int("count", len(items)),
		)
	}
	return items, nil
}

func (uc *inventoryUseCase) GetFilteredProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	if filters.MinQuantity != nil && filters.MaxQuantity != nil && *filters.MinQuantity > *filters.MaxQuantity {
		return []model.Product{}, nil
	}

	items, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperr.Storage("inventory.GetFilteredProducts", err)
	}
	return items, nil
}
