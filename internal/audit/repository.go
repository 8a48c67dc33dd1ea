package audit

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type Repository interface {
	Create(ctx context.Context, a *model.Audit) error
	List(ctx context.Context, offset, limit int) ([]model.Audit, error)
	Count(ctx context.Context) (int, error)
}
