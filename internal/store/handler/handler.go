package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/store"
	"github.com/fekuna/omnipos-local/internal/store/dto"
	"github.com/go-chi/chi/v5"
)

type StoreHandler struct {
	uc     store.UseCase
	logger logger.ZapLogger
}

func NewStoreHandler(uc store.UseCase, log logger.ZapLogger) *StoreHandler {
	return &StoreHandler{uc: uc, logger: log}
}

func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stores", h.listStores)
	r.Post("/stores", h.createStore)
	r.Get("/stores/active", h.activeStore)
	r.Get("/stores/{storeID}", h.getStore)
	r.Put("/stores/{storeID}", h.updateStore)
}

func (h *StoreHandler) createStore(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStoreInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	s, err := h.uc.AddStore(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, s)
}

func (h *StoreHandler) getStore(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.GetStore(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if s == nil {
		httpx.RespondError(w, http.StatusNotFound, "store not found")
		return
	}
	httpx.Respond(w, http.StatusOK, s)
}

func (h *StoreHandler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.uc.GetStores(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, stores)
}

func (h *StoreHandler) activeStore(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.ActiveStore(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if s == nil {
		httpx.RespondError(w, http.StatusNotFound, "no store configured")
		return
	}
	httpx.Respond(w, http.StatusOK, s)
}

func (h *StoreHandler) updateStore(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStoreInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	req.ID = chi.URLParam(r, "storeID")

	s, err := h.uc.UpdateStore(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, s)
}
