package customer

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/customer/dto"
	"github.com/fekuna/omnipos-local/internal/model"
)

type UseCase interface {
	AddCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error)
	GetCustomers(ctx context.Context) ([]model.Customer, error)
}
