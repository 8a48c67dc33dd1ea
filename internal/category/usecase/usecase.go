package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/category"
	"github.com/fekuna/omnipos-local/internal/category/dto"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) AddCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct("category.AddCategory", input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, apperr.Storage("category.AddCategory", err)
	}
	if existing != nil {
		return nil, apperr.Validation("category.AddCategory", "category %q already exists", input.Name)
	}

	cat := &model.Category{
		ID:   uuid.New().String(),
		Name: input.Name,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.Error(err))
		return nil, apperr.Storage("category.AddCategory", err)
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list categories", zap.Error(err))
		return nil, apperr.Storage("category.GetCategories", err)
	}
	return categories, nil
}
