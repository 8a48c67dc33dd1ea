package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/sale"
	"github.com/fekuna/omnipos-local/internal/sale/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// errNotSold aborts the sell transaction without reporting a failure.
var errNotSold = errors.New("not sold")

type saleUseCase struct {
	repo   sale.Repository
	tx     database.Transactor
	audit  audit.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSaleUseCase(repo sale.Repository, tx database.Transactor, auditUC audit.UseCase, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:   repo,
		tx:     tx,
		audit:  auditUC,
		logger: log,
		now:    time.Now,
	}
}

func (uc *saleUseCase) SellProduct(ctx context.Context, input *dto.SellProductInput) (*model.Sale, error) {
	if err := validation.Struct("sale.SellProduct", input); err != nil {
		return nil, err
	}

	var sold *model.Sale
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := uc.repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.StoreID != input.StoreID || p.Quantity < input.Quantity {
			return errNotSold
		}

		s := &model.Sale{
			ID:        uuid.New().String(),
			StoreID:   input.StoreID,
			ProductID: p.ID,
			Quantity:  input.Quantity,
			UnitPrice: p.Price,
			Total:     p.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
			Timestamp: uc.now().UTC(),
		}
		if err := uc.repo.Create(ctx, s); err != nil {
			return err
		}

		ok, err := uc.repo.DecrementStock(ctx, p.ID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return errNotSold
		}

		uc.audit.LogAudit(ctx, model.ProductSold{
			SaleID:    s.ID,
			StoreID:   s.StoreID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			Total:     s.Total,
		})
		sold = s
		return nil
	})
	if errors.Is(err, errNotSold) {
		uc.logger.Info("sale not completed",
			zap.String("product_id", input.ProductID),
			zap.Int("quantity", input.Quantity),
		)
		return nil, nil
	}
	if err != nil {
		uc.logger.Error("failed to sell product", zap.String("product_id", input.ProductID), zap.Error(err))
		return nil, apperr.Storage("sale.SellProduct", err)
	}
	return sold, nil
}

func (uc *saleUseCase) GetSales(ctx context.Context, storeID string, page, pageSize int) (*dto.SalesPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := uc.repo.CountByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Storage("sale.GetSales", err)
	}
	sales, err := uc.repo.FindByStore(ctx, storeID, (page-1)*pageSize, pageSize)
	if err != nil {
		uc.logger.Error("failed to list sales", zap.String("store_id", storeID), zap.Error(err))
		return nil, apperr.Storage("sale.GetSales", err)
	}

	ids := make([]string, 0, len(sales))
	seen := make(map[string]bool, len(sales))
	for _, s := range sales {
		if !seen[s.ProductID] {
			seen[s.ProductID] = true
			ids = append(ids, s.ProductID)
		}
	}
	products, err := uc.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Storage("sale.GetSales", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	out := &dto.SalesPage{Total: total, Sales: make([]model.SaleWithProduct, len(sales))}
	for i, s := range sales {
		out.Sales[i] = model.SaleWithProduct{Sale: s, Product: byID[s.ProductID]}
	}
	return out, nil
}
