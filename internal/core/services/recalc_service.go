package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
)

var (
	// ErrInvalidScope is returned when a scope names neither or both of a
	// bank account and a cash box.
	ErrInvalidScope = errors.New("scope must reference exactly one of a bank account or a cash box")
)

// recalcService restores the running-balance invariant of a scope's ledger
// after an out-of-order mutation. Only this service and the settlement
// engine are permitted to write CashFlowEntry.balance or the scope's
// cached balance.
type recalcService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	scopeRepo  portsrepo.ScopeRepositoryFacade
}

// NewRecalcService creates a new balance recalculator.
func NewRecalcService(ledgerRepo portsrepo.LedgerRepositoryFacade, scopeRepo portsrepo.ScopeRepositoryFacade) portssvc.RecalcSvcFacade {
	return &recalcService{
		ledgerRepo: ledgerRepo,
		scopeRepo:  scopeRepo,
	}
}

var _ portssvc.RecalcSvcFacade = (*recalcService)(nil)

// RecalculateFull recomputes every running balance in the scope from zero.
// Idempotent; safe to re-run. Implements portssvc.RecalcSvcFacade.
func (s *recalcService) RecalculateFull(ctx context.Context, scope domain.Scope) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !scope.Valid() {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidScope)
	}

	entries, err := s.ledgerRepo.FindEntriesByScope(ctx, scope)
	if err != nil {
		logger.Error("Failed to load ledger entries for full recalculation", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	final, err := s.applyBalances(ctx, entries, 0)
	if err != nil {
		return 0, err
	}

	if err := s.scopeRepo.SetScopeBalance(ctx, scope, final, true); err != nil {
		logger.Error("Failed to write scope cached balance after recalculation", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to update scope balance: %w", err)
	}

	logger.Info("Full balance recalculation completed", slog.Int("entries", len(entries)), slog.Int64("final_balance", final))
	return final, nil
}

// RecalculateFromDate recomputes balances only for the ledger tail at or
// after from, seeding from the last entry strictly before it. Correctness
// depends on from being no later than the earliest mutated entry; callers
// deleting an entry pass its date plus one millisecond so the deleted
// entry's own timestamp is excluded from the seed lookup while entries
// legitimately sharing that instant are still recomputed.
// Implements portssvc.RecalcSvcFacade.
func (s *recalcService) RecalculateFromDate(ctx context.Context, scope domain.Scope, from time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !scope.Valid() {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidScope)
	}

	var seed int64
	last, err := s.ledgerRepo.FindLastEntryBefore(ctx, scope, from)
	switch {
	case err == nil:
		seed = last.Balance
	case errors.Is(err, apperrors.ErrNotFound):
		seed = 0
	default:
		logger.Error("Failed to find seed entry for tail recalculation", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to find seed entry: %w", err)
	}

	entries, err := s.ledgerRepo.FindEntriesFromDate(ctx, scope, from)
	if err != nil {
		logger.Error("Failed to load ledger tail for recalculation", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	final, err := s.applyBalances(ctx, entries, seed)
	if err != nil {
		return 0, err
	}

	// An empty tail still has to leave the cache equal to the seed: the
	// deleted entry may have been the chronologically-last one.
	if err := s.scopeRepo.SetScopeBalance(ctx, scope, final, true); err != nil {
		logger.Error("Failed to write scope cached balance after tail recalculation", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to update scope balance: %w", err)
	}

	logger.Info("Tail balance recalculation completed",
		slog.Time("from", from),
		slog.Int("entries", len(entries)),
		slog.Int64("final_balance", final))
	return final, nil
}

// applyBalances walks entries (already ordered by date, createdAt)
// accumulating the running balance from seed and persists every balance
// that changed. Returns the final balance.
func (s *recalcService) applyBalances(ctx context.Context, entries []domain.CashFlowEntry, seed int64) (int64, error) {
	running := seed
	updates := make([]portsrepo.BalanceUpdate, 0, len(entries))
	for _, e := range entries {
		running += e.SignedValue()
		if e.Balance != running {
			updates = append(updates, portsrepo.BalanceUpdate{EntryID: e.EntryID, Balance: running})
		}
	}

	if len(updates) > 0 {
		if err := s.ledgerRepo.UpdateEntryBalances(ctx, updates); err != nil {
			return 0, fmt.Errorf("failed to persist recomputed balances: %w", err)
		}
	}
	return running, nil
}
