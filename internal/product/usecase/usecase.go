package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/product"
	"github.com/fekuna/omnipos-local/internal/product/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200

	recentSearchLimit   = 10
	minSearchTermLength = 2
)

type productUseCase struct {
	repo   product.Repository
	tx     database.Transactor
	audit  audit.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewProductUseCase(repo product.Repository, tx database.Transactor, auditUC audit.UseCase, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		tx:     tx,
		audit:  auditUC,
		logger: log,
		now:    time.Now,
	}
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.UserDefinedID = strings.TrimSpace(input.UserDefinedID)
	if err := validation.Struct("product.AddProduct", input); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, apperr.Validation("product.AddProduct", "price must not be negative")
	}

	unique, err := uc.repo.IsKeyUnique(ctx, input.StoreID, input.Name, input.UserDefinedID, "")
	if err != nil {
		return nil, apperr.Storage("product.AddProduct", err)
	}
	if !unique {
		return nil, apperr.Validation("product.AddProduct", "product %q with tag %q already exists", input.Name, input.UserDefinedID)
	}

	categoryID := input.CategoryID
	if categoryID != nil && *categoryID == "" {
		categoryID = nil
	}

	now := uc.now().UTC()
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:       input.StoreID,
		UserDefinedID: input.UserDefinedID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Quantity:      input.Quantity,
		CategoryID:    categoryID,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return nil, apperr.Storage("product.AddProduct", err)
	}

	uc.audit.LogAudit(ctx, model.InventoryChange{
		Action:    "product_added",
		ProductID: p.ID,
		StoreID:   p.StoreID,
		After:     model.FieldsOf(p),
	})
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("product.GetProduct", err)
	}
	return p, nil
}

func (uc *productUseCase) GetProducts(ctx context.Context, storeID string, page, pageSize int) ([]model.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	products, err := uc.repo.FindByStore(ctx, storeID, (page-1)*pageSize, pageSize)
	if err != nil {
		uc.logger.Error("failed to list products", zap.String("store_id", storeID), zap.Error(err))
		return nil, apperr.Storage("product.GetProducts", err)
	}
	return products, nil
}

func (uc *productUseCase) GetProductsCount(ctx context.Context, storeID string) (int, error) {
	count, err := uc.repo.CountByStore(ctx, storeID)
	if err != nil {
		return 0, apperr.Storage("product.GetProductsCount", err)
	}
	return count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct("product.UpdateProduct", input); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, apperr.Validation("product.UpdateProduct", "price must not be negative")
	}

	var (
		p      *model.Product
		before *model.ProductFields
	)
	// The read, the key check and the write share one transaction so a sale
	// cannot change the row in between.
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("product.UpdateProduct", "product %s not found", input.ID)
		}

		if p.Name != input.Name {
			unique, err := uc.repo.IsKeyUnique(ctx, p.StoreID, input.Name, p.UserDefinedID, p.ID)
			if err != nil {
				return err
			}
			if !unique {
				return apperr.Validation("product.UpdateProduct", "product %q with tag %q already exists", input.Name, p.UserDefinedID)
			}
		}

		before = model.FieldsOf(p)
		p.Name = input.Name
		p.Description = input.Description
		p.Price = input.Price
		p.Quantity = input.Quantity
		p.UpdatedAt = uc.now().UTC()
		return uc.repo.Update(ctx, p)
	})
	if err != nil {
		uc.logger.Error("failed to update product", zap.String("id", input.ID), zap.Error(err))
		return nil, apperr.Storage("product.UpdateProduct", err)
	}

	uc.audit.LogAudit(ctx, model.InventoryChange{
		Action:    "product_updated",
		ProductID: p.ID,
		StoreID:   p.StoreID,
		Before:    before,
		After:     model.FieldsOf(p),
	})
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	var p *model.Product
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("product.DeleteProduct", "product %s not found", id)
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		uc.logger.Error("failed to delete product", zap.String("id", id), zap.Error(err))
		return apperr.Storage("product.DeleteProduct", err)
	}

	uc.audit.LogAudit(ctx, model.InventoryChange{
		Action:    "product_deleted",
		ProductID: p.ID,
		StoreID:   p.StoreID,
		Before:    model.FieldsOf(p),
	})
	return nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, storeID, term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("product.SearchProducts", "search term is required")
	}

	products, err := uc.repo.FindByTag(ctx, storeID, term)
	if err != nil {
		uc.logger.Error("tag search failed", zap.String("term", term), zap.Error(err))
		return nil, apperr.Storage("product.SearchProducts", err)
	}
	if len(products) > 0 {
		return products, nil
	}

	products, err = uc.repo.FindByNamePrefix(ctx, storeID, term)
	if err != nil {
		uc.logger.Error("name search failed", zap.String("term", term), zap.Error(err))
		return nil, apperr.Storage("product.SearchProducts", err)
	}
	return products, nil
}

func (uc *productUseCase) SearchProductsByBarcode(ctx context.Context, storeID, barcode string) ([]model.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, apperr.Validation("product.SearchProductsByBarcode", "barcode is required")
	}

	products, err := uc.repo.FindByTag(ctx, storeID, barcode)
	if err != nil {
		return nil, apperr.Storage("product.SearchProductsByBarcode", err)
	}
	return products, nil
}

func (uc *productUseCase) AddRecentSearch(ctx context.Context, storeID, term string) (*model.RecentSearch, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchTermLength {
		return nil, apperr.Validation("product.AddRecentSearch", "search term must be at least %d characters", minSearchTermLength)
	}
	if storeID == "" {
		return nil, apperr.Validation("product.AddRecentSearch", "store id is required")
	}

	s := &model.RecentSearch{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		SearchTerm: term,
		Timestamp:  uc.now().UTC(),
	}
	if err := uc.repo.CreateRecentSearch(ctx, s); err != nil {
		return nil, apperr.Storage("product.AddRecentSearch", err)
	}
	return s, nil
}

func (uc *productUseCase) GetRecentSearches(ctx context.Context, storeID string) ([]model.RecentSearch, error) {
	searches, err := uc.repo.ListRecentSearches(ctx, storeID, recentSearchLimit)
	if err != nil {
		return nil, apperr.Storage("product.GetRecentSearches", err)
	}
	return searches, nil
}
