package services

import (
	"context"
	"fmt"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates the read-only reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetCashFlowSummary implements portssvc.ReportingSvcFacade.
func (s *reportingService) GetCashFlowSummary(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CashFlowSummary, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: exactly one of bankAccountID/cashBoxID must be set", apperrors.ErrValidation)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}
	return s.reportingRepo.GetCashFlowSummary(ctx, scope, from, to)
}
