package repositories

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// SaveSettlementParams carries everything one settlement writes. Exactly
// one of BankTransaction/CashTransaction is set, matching the entry's
// scope. Entry.Balance is ignored on input: the repository seeds it from
// the scope's last prior ledger entry inside the same transaction, so the
// new entry is consistent with ledger ordering even when the settlement
// date is not "now".
type SaveSettlementParams struct {
	Document        domain.Document
	BankTransaction *domain.BankTransaction
	CashTransaction *domain.CashTransaction
	Entry           domain.CashFlowEntry
}

// SaveReversalParams carries everything one settlement reversal writes.
// The inverse raw transaction is inserted, the matched ledger entry is
// deleted (not inverted), the document is reset to PENDING, the scope's
// cached balance is adjusted by BalanceDelta, and the scope is flagged
// recalc-pending, all atomically. MatchedEntryID may be empty when the
// heuristic lookup found nothing.
type SaveReversalParams struct {
	Document        domain.Document // already reset to PENDING by the service
	BankTransaction *domain.BankTransaction
	CashTransaction *domain.CashTransaction
	MatchedEntryID  string
	Scope           domain.Scope
	BalanceDelta    int64 // cents, signed
}

// SaveEntryDeletionParams carries everything one ledger-entry deletion
// writes. Either raw transaction id may be empty when matching found
// nothing; RevertDocument is nil when the entry carries no document number
// or no PAID document matched it.
type SaveEntryDeletionParams struct {
	Entry             domain.CashFlowEntry
	BankTransactionID string
	CashTransactionID string
	RevertDocument    *domain.Document // already reset to PENDING by the service
	BalanceDelta      int64            // cents, signed inverse of the entry
}

// SettlementRepositoryFacade groups the multi-table atomic writes of the
// settlement and reversal engines. Each method is all-or-nothing.
type SettlementRepositoryFacade interface {
	// SaveSettlement updates the document, inserts the raw transaction,
	// adjusts the scope's cached balance and appends the ledger entry in
	// one transaction. Returns the entry with its seeded balance.
	SaveSettlement(ctx context.Context, params SaveSettlementParams) (*domain.CashFlowEntry, error)

	// SaveReversal undoes a settlement atomically. Recalculation is the
	// caller's responsibility after commit.
	SaveReversal(ctx context.Context, params SaveReversalParams) error

	// SaveEntryDeletion removes a ledger entry and its side effects
	// atomically. Recalculation is the caller's responsibility after commit.
	SaveEntryDeletion(ctx context.Context, params SaveEntryDeletionParams) error
}
