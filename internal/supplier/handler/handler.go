package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/supplier"
	"github.com/fekuna/omnipos-local/internal/supplier/dto"
	"github.com/go-chi/chi/v5"
)

type SupplierHandler struct {
	uc     supplier.UseCase
	logger logger.ZapLogger
}

func NewSupplierHandler(uc supplier.UseCase, log logger.ZapLogger) *SupplierHandler {
	return &SupplierHandler{uc: uc, logger: log}
}

func (h *SupplierHandler) RegisterRoutes(r chi.Router) {
	r.Get("/suppliers", h.listSuppliers)
	r.Post("/suppliers", h.createSupplier)

	r.Post("/stores/{storeID}/purchase-orders", h.placePurchaseOrder)
	r.Get("/stores/{storeID}/purchase-orders", h.listPurchaseOrders)
	r.Post("/purchase-orders/{purchaseOrderID}/confirm", h.confirmPurchaseOrder)
}

func (h *SupplierHandler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupplierInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	s, err := h.uc.AddSupplier(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, s)
}

func (h *SupplierHandler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.uc.GetSuppliers(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) placePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlacePurchaseOrderInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.StoreID = chi.URLParam(r, "storeID")

	po, err := h.uc.PlacePurchaseOrder(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, po)
}

func (h *SupplierHandler) listPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.GetPurchaseOrders(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

func (h *SupplierHandler) confirmPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po, err := h.uc.ConfirmPurchaseOrder(r.Context(), chi.URLParam(r, "purchaseOrderID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, po)
}
