package category

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/category/dto"
	"github.com/fekuna/omnipos-local/internal/model"
)

type UseCase interface {
	AddCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
}
