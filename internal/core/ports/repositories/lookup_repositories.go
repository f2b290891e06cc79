package repositories

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// LookupRepositoryFacade reads the payment-method and cost-center tables.
type LookupRepositoryFacade interface {
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)
	FindCostCenterByName(ctx context.Context, name string) (*domain.CostCenter, error)
}
