package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/category/dto"
	"github.com/fekuna/omnipos-local/internal/category/repository"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListCategories(t *testing.T) {
	repo := repository.NewSQLiteRepository(dbtest.New(t))
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: " Snacks "})
	require.NoError(t, err)
	_, err = uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "Beverages"})
	require.NoError(t, err)

	_, err = uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "Snacks"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.AddCategory(ctx, &dto.CreateCategoryInput{Name: "  "})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	cats, err := uc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Beverages", cats[0].Name)
	assert.Equal(t, "Snacks", cats[1].Name)
}

func TestCreateManySkipsExistingNames(t *testing.T) {
	repo := repository.NewSQLiteRepository(dbtest.New(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateMany(ctx, []model.Category{{ID: "1", Name: "Dairy"}, {ID: "2", Name: "Bakery"}}))
	require.NoError(t, repo.CreateMany(ctx, []model.Category{{ID: "3", Name: "Dairy"}}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
