package pgsql

import (
	"context"
	"errors"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLookupRepository struct {
	BaseRepository
}

// newPgxLookupRepository creates a new repository for the payment-method and
// cost-center lookup tables.
func newPgxLookupRepository(pool *pgxpool.Pool) portsrepo.LookupRepositoryFacade {
	return &PgxLookupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LookupRepositoryFacade = (*PgxLookupRepository)(nil)

func toDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		Name:            m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID: m.CostCenterID,
		Name:         m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindPaymentMethodByID retrieves a payment method by its ID.
func (r *PgxLookupRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE payment_method_id = $1;
	`
	var m models.PaymentMethod
	err := r.Pool.QueryRow(ctx, query, paymentMethodID).Scan(
		&m.PaymentMethodID, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment method "+paymentMethodID, err)
	}
	pm := toDomainPaymentMethod(m)
	return &pm, nil
}

// FindCostCenterByID retrieves a cost center by its ID.
func (r *PgxLookupRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE cost_center_id = $1;
	`
	var m models.CostCenter
	err := r.Pool.QueryRow(ctx, query, costCenterID).Scan(
		&m.CostCenterID, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cost center "+costCenterID, err)
	}
	cc := toDomainCostCenter(m)
	return &cc, nil
}

// FindCostCenterByName retrieves a cost center by its exact name.
func (r *PgxLookupRepository) FindCostCenterByName(ctx context.Context, name string) (*domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE name = $1
		LIMIT 1;
	`
	var m models.CostCenter
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&m.CostCenterID, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cost center by name "+name, err)
	}
	cc := toDomainCostCenter(m)
	return &cc, nil
}
