package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-local/internal/customer"
	"github.com/fekuna/omnipos-local/internal/customer/dto"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: log}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.listCustomers)
	r.Post("/customers", h.createCustomer)
}

func (h *CustomerHandler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	c, err := h.uc.AddCustomer(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, c)
}

func (h *CustomerHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.uc.GetCustomers(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, customers)
}
