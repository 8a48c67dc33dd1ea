package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/supplier"
	"github.com/fekuna/omnipos-local/internal/supplier/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type supplierUseCase struct {
	repo   supplier.Repository
	tx     database.Transactor
	audit  audit.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSupplierUseCase(repo supplier.Repository, tx database.Transactor, auditUC audit.UseCase, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{
		repo:   repo,
		tx:     tx,
		audit:  auditUC,
		logger: log,
		now:    time.Now,
	}
}

func (uc *supplierUseCase) AddSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct("supplier.AddSupplier", input); err != nil {
		return nil, err
	}

	s := &model.Supplier{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create supplier", zap.String("name", s.Name), zap.Error(err))
		return nil, apperr.Storage("supplier.AddSupplier", err)
	}
	return s, nil
}

func (uc *supplierUseCase) GetSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage("supplier.GetSuppliers", err)
	}
	return suppliers, nil
}

func (uc *supplierUseCase) PlacePurchaseOrder(ctx context.Context, input *dto.PlacePurchaseOrderInput) (*model.PurchaseOrder, error) {
	if err := validation.Struct("supplier.PlacePurchaseOrder", input); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range input.Items {
		if item.UnitCost.IsNegative() {
			return nil, apperr.Validation("supplier.PlacePurchaseOrder", "unit cost of %q must not be negative", item.Name)
		}
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	s, err := uc.repo.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, apperr.Storage("supplier.PlacePurchaseOrder", err)
	}
	if s == nil {
		return nil, apperr.NotFound("supplier.PlacePurchaseOrder", "supplier %s not found", input.SupplierID)
	}

	po := &model.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: s.ID,
		StoreID:    input.StoreID,
		Items:      input.Items,
		TotalCost:  total,
		PlacedAt:   uc.now().UTC(),
	}
	if err := uc.repo.CreatePurchaseOrder(ctx, po); err != nil {
		uc.logger.Error("failed to place purchase order", zap.String("supplier_id", s.ID), zap.Error(err))
		return nil, apperr.Storage("supplier.PlacePurchaseOrder", err)
	}

	uc.audit.LogAudit(ctx, model.PurchaseOrderEvent{
		Action:          "placed",
		PurchaseOrderID: po.ID,
		SupplierID:      po.SupplierID,
		StoreID:         po.StoreID,
		TotalCost:       po.TotalCost,
	})
	return po, nil
}

func (uc *supplierUseCase) GetPurchaseOrders(ctx context.Context, storeID string) ([]model.PurchaseOrder, error) {
	orders, err := uc.repo.FindPurchaseOrdersByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Storage("supplier.GetPurchaseOrders", err)
	}
	return orders, nil
}

func (uc *supplierUseCase) ConfirmPurchaseOrder(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	var po *model.PurchaseOrder
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		po, err = uc.repo.FindPurchaseOrder(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return apperr.NotFound("supplier.ConfirmPurchaseOrder", "purchase order %s not found", id)
		}

		at := uc.now().UTC()
		changed, err := uc.repo.MarkConfirmed(ctx, id, at)
		if err != nil {
			return err
		}
		if !changed {
			return apperr.Validation("supplier.ConfirmPurchaseOrder", "purchase order %s is already confirmed", id)
		}
		po.Confirmed = true
		po.ConfirmedAt = &at
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("supplier.ConfirmPurchaseOrder", err)
	}

	uc.audit.LogAudit(ctx, model.PurchaseOrderEvent{
		Action:          "confirmed",
		PurchaseOrderID: po.ID,
		SupplierID:      po.SupplierID,
		StoreID:         po.StoreID,
		TotalCost:       po.TotalCost,
	})
	return po, nil
}
