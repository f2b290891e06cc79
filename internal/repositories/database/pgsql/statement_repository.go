package pgsql

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates the repository for the statement
// importer's writes.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

// DeleteImportedRows removes every ledger entry and raw bank transaction
// tagged with the given file name for the account, in one transaction.
func (r *PgxStatementRepository) DeleteImportedRows(ctx context.Context, bankAccountID, csvFileName string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx,
		`DELETE FROM cash_flow_entries WHERE bank_account_id = $1 AND csv_file_name = $2;`,
		bankAccountID, csvFileName,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete imported entries for file "+csvFileName, err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM bank_transactions WHERE bank_account_id = $1 AND csv_file_name = $2;`,
		bankAccountID, csvFileName,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete imported transactions for file "+csvFileName, err)
	}

	return r.Commit(ctx, tx)
}

// SaveImportedRow inserts one raw transaction plus its ledger entry in one
// transaction. A failure rolls back just this row.
func (r *PgxStatementRepository) SaveImportedRow(ctx context.Context, txn domain.BankTransaction, entry domain.CashFlowEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertBankTransactionTx(ctx, tx, mapping.ToModelBankTransaction(txn)); err != nil {
		return err
	}
	if err := insertEntryTx(ctx, tx, mapping.ToModelCashFlowEntry(entry)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
