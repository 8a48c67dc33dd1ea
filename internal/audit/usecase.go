package audit

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type UseCase interface {
	// LogAudit appends an event. It never fails the caller.
	LogAudit(ctx context.Context, payload model.AuditPayload)
	GetAuditLogsPaginated(ctx context.Context, offset, limit int) ([]model.Audit, int, error)
}
