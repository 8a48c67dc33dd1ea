package customer

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindAll(ctx context.Context) ([]model.Customer, error)
}
