package store

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/store/dto"
)

type UseCase interface {
	AddStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error)
	GetStore(ctx context.Context, id string) (*model.Store, error)
	GetStores(ctx context.Context) ([]model.Store, error)
	UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error)
	// ActiveStore is the first store created on this installation.
	ActiveStore(ctx context.Context) (*model.Store, error)
}
