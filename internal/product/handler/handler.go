package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/product"
	"github.com/fekuna/omnipos-local/internal/product/dto"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stores/{storeID}/products", h.listProducts)
	r.Post("/stores/{storeID}/products", h.createProduct)
	r.Get("/stores/{storeID}/products/search", h.searchProducts)
	r.Get("/stores/{storeID}/products/barcode/{barcode}", h.searchByBarcode)
	r.Get("/stores/{storeID}/recent-searches", h.listRecentSearches)
	r.Post("/stores/{storeID}/recent-searches", h.addRecentSearch)

	r.Get("/products/{productID}", h.getProduct)
	r.Put("/products/{productID}", h.updateProduct)
	r.Delete("/products/{productID}", h.deleteProduct)
}

type listProductsResponse struct {
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Products []model.Product `json:"products"`
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
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

	products, err := h.uc.GetProducts(r.Context(), storeID, page, pageSize)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	total, err := h.uc.GetProductsCount(r.Context(), storeID)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	httpx.Respond(w, http.StatusOK, listProductsResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Products: products,
	})
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.StoreID = chi.URLParam(r, "storeID")

	p, err := h.uc.AddProduct(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	h.logger.Info("product created", zap.String("id", p.ID), zap.String("store_id", p.StoreID))
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if p == nil {
		httpx.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.ID = chi.URLParam(r, "productID")

	p, err := h.uc.UpdateProduct(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// searchProducts also records the term as a recent search when it
// matched something.
func (h *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	term := r.URL.Query().Get("q")

	products, err := h.uc.SearchProducts(r.Context(), storeID, term)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if len(products) > 0 {
		if _, err := h.uc.AddRecentSearch(r.Context(), storeID, term); err != nil {
			h.logger.Debug("recent search not recorded", zap.String("term", term), zap.Error(err))
		}
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *ProductHandler) searchByBarcode(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.SearchProductsByBarcode(r.Context(), chi.URLParam(r, "storeID"), chi.URLParam(r, "barcode"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *ProductHandler) listRecentSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.uc.GetRecentSearches(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, searches)
}

func (h *ProductHandler) addRecentSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	rs, err := h.uc.AddRecentSearch(r.Context(), chi.URLParam(r, "storeID"), req.Term)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, rs)
}
