package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/sale"
	"github.com/fekuna/omnipos-local/internal/sale/dto"
	"github.com/go-chi/chi/v5"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{uc: uc, logger: log}
}

func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stores/{storeID}/sales", h.listSales)
	r.Post("/stores/{storeID}/sales", h.sellProduct)
}

// sellProduct answers 409 when the product is unknown or short on stock.
func (h *SaleHandler) sellProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.SellProductInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.StoreID = chi.URLParam(r, "storeID")

	s, err := h.uc.SellProduct(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if s == nil {
		httpx.RespondError(w, http.StatusConflict, "product unavailable or insufficient stock")
		return
	}
	httpx.Respond(w, http.StatusCreated, s)
}

func (h *SaleHandler) listSales(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.QueryInt(r, "page", 1)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	pageSize, err := httpx.QueryInt(r, "pageSize", 0)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	res, err := h.uc.GetSales(r.Context(), chi.URLParam(r, "storeID"), page, pageSize)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}
