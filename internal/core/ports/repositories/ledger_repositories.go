package repositories

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// EntryMatch carries the criteria used to locate the ledger entry created
// by a settlement. SettlementID wins when present; the remaining fields are
// the heuristic fallback for rows that predate the correlation column.
type EntryMatch struct {
	Scope            domain.Scope
	Value            int64 // cents
	Type             domain.EntryType
	SettlementID     *string
	DocumentNumber   *string
	HistoricContains string
}

// BalanceUpdate assigns a recomputed running balance to one entry.
type BalanceUpdate struct {
	EntryID string
	Balance int64 // cents
}

// TimestampBalance assigns a recomputed balance to every entry of a bank
// account sharing one exact timestamp (statement import second pass).
type TimestampBalance struct {
	Timestamp time.Time
	Balance   int64 // cents
}

// LedgerReader defines read operations over the cash-flow ledger.
type LedgerReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error)

	// FindEntriesByScope retrieves every entry in the scope ordered by
	// (date asc, created_at asc).
	FindEntriesByScope(ctx context.Context, scope domain.Scope) ([]domain.CashFlowEntry, error)

	// FindEntriesFromDate retrieves the scope's entries with date >= from,
	// ordered by (date asc, created_at asc).
	FindEntriesFromDate(ctx context.Context, scope domain.Scope, from time.Time) ([]domain.CashFlowEntry, error)

	// FindLastEntryBefore retrieves the chronologically-last entry with
	// date strictly before the given instant. Returns ErrNotFound when the
	// scope has no earlier entry.
	FindLastEntryBefore(ctx context.Context, scope domain.Scope, before time.Time) (*domain.CashFlowEntry, error)

	// FindMatchingEntry locates the entry a settlement created, by
	// correlation id or heuristics. Returns ErrNotFound when nothing matches.
	FindMatchingEntry(ctx context.Context, match EntryMatch) (*domain.CashFlowEntry, error)
}

// LedgerWriter defines write operations over the cash-flow ledger. These
// are plain persistence operations; business rules live in the services.
type LedgerWriter interface {
	// SaveEntry inserts one ledger entry.
	SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error

	// DeleteEntry removes one ledger entry.
	DeleteEntry(ctx context.Context, entryID string) error

	// UpdateEntryBalances writes recomputed balances in bulk.
	UpdateEntryBalances(ctx context.Context, updates []BalanceUpdate) error

	// UpdateEntryBalancesByTimestamp writes a recomputed balance onto every
	// entry of the bank account sharing each exact timestamp.
	UpdateEntryBalancesByTimestamp(ctx context.Context, bankAccountID string, updates []TimestampBalance) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
