package pgsql

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates the repository for the multi-table
// atomic writes of the settlement and reversal engines.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

// SaveSettlement updates the document, inserts the raw transaction, appends
// the ledger entry and adjusts the scope's cached balance in one
// transaction. The scope row is locked first, serializing concurrent
// settlements against the same scope; the entry's balance is seeded from
// the last entry at or before its date, so a backdated settlement still
// lands consistent with ledger ordering at its own position.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, params portsrepo.SaveSettlementParams) (*domain.CashFlowEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry := params.Entry
	scope := entry.Scope()

	cachedBalance, err := lockScopeBalanceTx(ctx, tx, scope)
	if err != nil {
		return nil, err
	}

	if err := updateDocumentTx(ctx, tx, mapping.ToModelDocument(params.Document)); err != nil {
		return nil, err
	}

	if err := insertRawTransactionTx(ctx, tx, params.BankTransaction, params.CashTransaction); err != nil {
		return nil, err
	}

	seed, err := findLastEntryAtOrBeforeTx(ctx, tx, scope, entry.Date)
	if err != nil {
		return nil, err
	}
	entry.Balance = seed + entry.SignedValue()
	if err := insertEntryTx(ctx, tx, mapping.ToModelCashFlowEntry(entry)); err != nil {
		return nil, err
	}

	if err := applyScopeBalanceTx(ctx, tx, scope, cachedBalance+entry.SignedValue(), false); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveReversal undoes a settlement atomically: the document goes back to
// PENDING, the inverse raw transaction is inserted, the matched ledger
// entry is deleted and the scope's cached balance is adjusted with the
// recalc-pending marker set. The balance recalculation runs after commit.
func (r *PgxSettlementRepository) SaveReversal(ctx context.Context, params portsrepo.SaveReversalParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cachedBalance, err := lockScopeBalanceTx(ctx, tx, params.Scope)
	if err != nil {
		return err
	}

	if err := updateDocumentTx(ctx, tx, mapping.ToModelDocument(params.Document)); err != nil {
		return err
	}

	if err := insertRawTransactionTx(ctx, tx, params.BankTransaction, params.CashTransaction); err != nil {
		return err
	}

	if params.MatchedEntryID != "" {
		if err := deleteEntryTx(ctx, tx, params.MatchedEntryID); err != nil {
			return err
		}
	}

	if err := applyScopeBalanceTx(ctx, tx, params.Scope, cachedBalance+params.BalanceDelta, true); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveEntryDeletion removes a ledger entry and its side effects atomically:
// the matched raw transaction goes away, the originating document (when
// matched) returns to PENDING, and the scope balance is adjusted with the
// recalc-pending marker set.
func (r *PgxSettlementRepository) SaveEntryDeletion(ctx context.Context, params portsrepo.SaveEntryDeletionParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	scope := params.Entry.Scope()
	cachedBalance, err := lockScopeBalanceTx(ctx, tx, scope)
	if err != nil {
		return err
	}

	if err := deleteEntryTx(ctx, tx, params.Entry.EntryID); err != nil {
		return err
	}

	if params.BankTransactionID != "" {
		if _, err := tx.Exec(ctx, `DELETE FROM bank_transactions WHERE bank_transaction_id = $1;`, params.BankTransactionID); err != nil {
			return apperrors.NewAppError(500, "failed to delete bank transaction "+params.BankTransactionID, err)
		}
	}
	if params.CashTransactionID != "" {
		if _, err := tx.Exec(ctx, `DELETE FROM cash_transactions WHERE cash_transaction_id = $1;`, params.CashTransactionID); err != nil {
			return apperrors.NewAppError(500, "failed to delete cash transaction "+params.CashTransactionID, err)
		}
	}

	if params.RevertDocument != nil {
		if err := updateDocumentTx(ctx, tx, mapping.ToModelDocument(*params.RevertDocument)); err != nil {
			return err
		}
	}

	if err := applyScopeBalanceTx(ctx, tx, scope, cachedBalance+params.BalanceDelta, true); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertRawTransactionTx(ctx context.Context, tx pgx.Tx, bank *domain.BankTransaction, cash *domain.CashTransaction) error {
	if bank != nil {
		return insertBankTransactionTx(ctx, tx, mapping.ToModelBankTransaction(*bank))
	}
	if cash != nil {
		return insertCashTransactionTx(ctx, tx, mapping.ToModelCashTransaction(*cash))
	}
	return apperrors.NewAppError(500, "no raw transaction to insert", nil)
}

func deleteEntryTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM cash_flow_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
