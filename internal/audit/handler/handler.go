package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/go-chi/chi/v5"
)

type AuditHandler struct {
	uc     audit.UseCase
	logger logger.ZapLogger
}

func NewAuditHandler(uc audit.UseCase, log logger.ZapLogger) *AuditHandler {
	return &AuditHandler{uc: uc, logger: log}
}

// RegisterRoutes expects r to be restricted to admins already.
func (h *AuditHandler) RegisterRoutes(r chi.Router) {
	r.Get("/audits", h.listAudits)
}

type listAuditsResponse struct {
	Total  int           `json:"total"`
	Audits []model.Audit `json:"audits"`
}

func (h *AuditHandler) listAudits(w http.ResponseWriter, r *http.Request) {
	offset, err := httpx.QueryInt(r, "offset", 0)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", 50)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	audits, total, err := h.uc.GetAuditLogsPaginated(r.Context(), offset, limit)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, listAuditsResponse{Total: total, Audits: audits})
}
