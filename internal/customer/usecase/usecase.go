package usecase

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/customer"
	"github.com/fekuna/omnipos-local/internal/customer/dto"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{repo: repo, logger: log}
}

func (uc *customerUseCase) AddCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	if err := validation.Struct("customer.AddCustomer", input); err != nil {
		return nil, err
	}
	c := &model.Customer{
		ID:    uuid.New().String(),
		Name:  input.Name,
		Email: input.Email,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		uc.logger.Error("failed to create customer", zap.Error(err))
		return nil, apperr.Storage("customer.AddCustomer", err)
	}
	return c, nil
}

func (uc *customerUseCase) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list customers", zap.Error(err))
		return nil, apperr.Storage("customer.GetCustomers", err)
	}
	return customers, nil
}
