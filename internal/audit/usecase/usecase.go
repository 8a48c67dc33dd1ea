package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxPageSize = 200

type auditUseCase struct {
	repo   audit.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewAuditUseCase(repo audit.Repository, log logger.ZapLogger) audit.UseCase {
	return &auditUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

func (uc *auditUseCase) LogAudit(ctx context.Context, payload model.AuditPayload) {
	if payload == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		uc.logger.Error("failed to encode audit payload", zap.String("type", string(payload.AuditType())), zap.Error(err))
		return
	}

	a := &model.Audit{
		ID:        uuid.New().String(),
		Type:      payload.AuditType(),
		Data:      data,
		Timestamp: uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		uc.logger.Error("failed to write audit log", zap.String("type", string(a.Type)), zap.Error(err))
	}
}

func (uc *auditUseCase) GetAuditLogsPaginated(ctx context.Context, offset, limit int) ([]model.Audit, int, error) {
	if offset < 0 {
		return nil, 0, apperr.Validation("audit.GetAuditLogsPaginated", "offset must be >= 0")
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	audits, err := uc.repo.List(ctx, offset, limit)
	if err != nil {
		uc.logger.Error("failed to list audit logs", zap.Error(err))
		return nil, 0, apperr.Storage("audit.GetAuditLogsPaginated", err)
	}
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperr.Storage("audit.GetAuditLogsPaginated", err)
	}
	return audits, count, nil
}
