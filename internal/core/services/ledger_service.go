package services

import (
	"context"
	"fmt"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
)

type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates the read-side ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ListEntries implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ListEntries(ctx context.Context, scope domain.Scope) ([]domain.CashFlowEntry, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: exactly one of bankAccountID/cashBoxID must be set", apperrors.ErrValidation)
	}
	return s.ledgerRepo.FindEntriesByScope(ctx, scope)
}
