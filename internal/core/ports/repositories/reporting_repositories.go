package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// ReportingRepositoryFacade consumes the ledger read-only.
type ReportingRepositoryFacade interface {
	// GetCashFlowSummary aggregates the scope's entries within [from, to).
	GetCashFlowSummary(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CashFlowSummary, error)
}
