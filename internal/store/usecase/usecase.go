package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/store"
	"github.com/fekuna/omnipos-local/internal/store/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type storeUseCase struct {
	repo   store.Repository
	logger logger.ZapLogger
}

func NewStoreUseCase(repo store.Repository, log logger.ZapLogger) store.UseCase {
	return &storeUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *storeUseCase) AddStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error) {
	if err := validation.Struct("store.AddStore", input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s := &model.Store{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Email:     input.Email,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create store", zap.Error(err))
		return nil, apperr.Storage("store.AddStore", err)
	}
	return s, nil
}

func (uc *storeUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("store.GetStore", err)
	}
	return s, nil
}

func (uc *storeUseCase) GetStores(ctx context.Context) ([]model.Store, error) {
	stores, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list stores", zap.Error(err))
		return nil, apperr.Storage("store.GetStores", err)
	}
	return stores, nil
}

func (uc *storeUseCase) UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error) {
	if err := validation.Struct("store.UpdateStore", input); err != nil {
		return nil, err
	}

	s, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Storage("store.UpdateStore", err)
	}
	if s == nil {
		return nil, apperr.NotFound("store.UpdateStore", "store %s not found", input.ID)
	}

	s.Name = input.Name
	s.Address = input.Address
	s.Phone = input.Phone
	s.Email = input.Email
	s.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, apperr.Storage("store.UpdateStore", err)
	}
	return s, nil
}

func (uc *storeUseCase) ActiveStore(ctx context.Context) (*model.Store, error) {
	stores, err := uc.GetStores(ctx)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, nil
	}
	return &stores[0], nil
}
