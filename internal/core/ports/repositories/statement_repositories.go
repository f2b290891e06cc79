package repositories

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// StatementRepositoryFacade groups the statement importer's writes.
type StatementRepositoryFacade interface {
	// DeleteImportedRows removes every ledger entry and raw bank
	// transaction tagged with the given file name for the account, in one
	// transaction. Re-importing under the same name replaces, never
	// duplicates.
	DeleteImportedRows(ctx context.Context, bankAccountID, csvFileName string) error

	// SaveImportedRow inserts one raw transaction plus its ledger entry in
	// one transaction. A failure rolls back just this row.
	SaveImportedRow(ctx context.Context, txn domain.BankTransaction, entry domain.CashFlowEntry) error
}
