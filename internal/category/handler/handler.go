package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/category"
	"github.com/fekuna/omnipos-local/internal/category/dto"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.listCategories)
	r.Post("/categories", h.createCategory)
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	cat, err := h.uc.AddCategory(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.uc.GetCategories(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, cats)
}
