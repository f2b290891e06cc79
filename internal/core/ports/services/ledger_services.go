package services

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// RecalcSvcFacade restores the running-balance invariant of a scope after
// an out-of-order mutation. Both operations are idempotent and safe to
// re-run; both leave the scope's cached balance equal to the returned
// final balance and clear the recalc-pending marker.
type RecalcSvcFacade interface {
	// RecalculateFull walks every entry of the scope in (date, createdAt)
	// order, recomputing balances from zero. Returns the final balance.
	RecalculateFull(ctx context.Context, scope domain.Scope) (int64, error)

	// RecalculateFromDate recomputes balances only for entries at or after
	// from, seeding from the last entry strictly before it. fromDate must
	// be no later than the earliest mutated entry.
	RecalculateFromDate(ctx context.Context, scope domain.Scope, from time.Time) (int64, error)
}

// LedgerSvcFacade exposes read access to a scope's ledger and the manual
// deletion path.
type LedgerSvcFacade interface {
	ListEntries(ctx context.Context, scope domain.Scope) ([]domain.CashFlowEntry, error)
}
