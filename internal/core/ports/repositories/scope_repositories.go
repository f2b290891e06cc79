package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// ScopeReader defines read operations for bank accounts, cash boxes and
// bank balance snapshots.
type ScopeReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)

	// FindLastBankBalanceBefore retrieves the most recent balance snapshot
	// created strictly before the given instant. Returns ErrNotFound when
	// the account has no earlier snapshot.
	FindLastBankBalanceBefore(ctx context.Context, bankAccountID string, before time.Time) (*domain.BankBalance, error)
}

// ScopeWriter defines write operations for scopes and their cached balance.
type ScopeWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	SaveCashBox(ctx context.Context, box domain.CashBox) error

	// SetScopeBalance writes the scope's cached balance and, when asked,
	// clears the recalc-pending marker in the same statement.
	SetScopeBalance(ctx context.Context, scope domain.Scope, balance int64, clearRecalcPending bool) error

	// SaveBankBalanceSnapshot appends a balance snapshot row.
	SaveBankBalanceSnapshot(ctx context.Context, snapshot domain.BankBalance) error
}

// ScopeRepositoryFacade combines all scope repository interfaces.
type ScopeRepositoryFacade interface {
	ScopeReader
	ScopeWriter
}
