package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/inventory"
	"github.com/fekuna/omnipos-local/internal/inventory/dto"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/products/{productID}/quantity", h.adjustQuantity)
	r.Get("/stores/{storeID}/inventory", h.filterProducts)
	r.Get("/stores/{storeID}/inventory/levels", h.inventoryLevels)
	r.Get("/stores/{storeID}/inventory/low-stock", h.lowStock)
}

func (h *InventoryHandler) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustQuantityInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.ProductID = chi.URLParam(r, "productID")

	p, err := h.uc.UpdateProductQuantity(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

// inventoryLevels lists products strictly below ?threshold=.
func (h *InventoryHandler) inventoryLevels(w http.ResponseWriter, r *http.Request) {
	threshold, err := httpx.QueryInt(r, "threshold", 0)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	products, err := h.uc.CheckInventoryLevels(r.Context(), chi.URLParam(r, "storeID"), threshold)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *InventoryHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := httpx.QueryInt(r, "threshold", 0)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	products, err := h.uc.CheckLowStock(r.Context(), chi.URLParam(r, "storeID"), threshold)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *InventoryHandler) filterProducts(w http.ResponseWriter, r *http.Request) {
	filters := &dto.ProductFilters{StoreID: chi.URLParam(r, "storeID")}
	filters.WithName(r.URL.Query().Get("name"))

	minQty, err := httpx.QueryIntPtr(r, "minQuantity")
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	maxQty, err := httpx.QueryIntPtr(r, "maxQuantity")
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if minQty != nil {
		filters.WithMinQuantity(*minQty)
	}
	if maxQty != nil {
		filters.WithMaxQuantity(*maxQty)
	}

	products, err := h.uc.GetFilteredProducts(r.Context(), filters)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}
