package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// TransactionMatch carries the criteria used to locate the raw transaction
// created alongside a ledger entry. SettlementID wins when present, then
// CSVFileName for imported rows; the remaining fields are the heuristic
// fallback. NotBefore bounds the search window at the low end; there is no
// upper bound and the nearest row to NearestTo wins.
type TransactionMatch struct {
	BankAccountID       string // exactly one of BankAccountID
	CashBoxID           string // or CashBoxID is set
	Amount              int64  // cents
	Type                domain.EntryType
	DescriptionContains string
	SettlementID        *string
	CSVFileName         *string
	NotBefore           time.Time
	NearestTo           time.Time
}

// TransactionReader defines read operations over the raw transaction logs.
type TransactionReader interface {
	// FindMatchingBankTransaction locates a bank transaction by correlation
	// id, CSV file tag, or heuristics. Returns ErrNotFound when nothing
	// matches.
	FindMatchingBankTransaction(ctx context.Context, match TransactionMatch) (*domain.BankTransaction, error)

	// FindMatchingCashTransaction is the cash-box counterpart.
	FindMatchingCashTransaction(ctx context.Context, match TransactionMatch) (*domain.CashTransaction, error)

	// ListBankTransactionsFromDate retrieves the account's raw transactions
	// with timestamp >= from, ordered by (timestamp asc, created_at asc).
	ListBankTransactionsFromDate(ctx context.Context, bankAccountID string, from time.Time) ([]domain.BankTransaction, error)

	// FindLastBankTransactionTimeOn returns the timestamp of the account's
	// last raw transaction within the calendar day containing the given
	// instant (UTC). Returns ErrNotFound when the day has none.
	FindLastBankTransactionTimeOn(ctx context.Context, bankAccountID string, day time.Time) (time.Time, error)
}

// TransactionWriter defines write operations over the raw transaction logs.
type TransactionWriter interface {
	SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error
	SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error
	DeleteBankTransaction(ctx context.Context, bankTransactionID string) error
	DeleteCashTransaction(ctx context.Context, cashTransactionID string) error
}

// TransactionRepositoryFacade combines the raw transaction interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
