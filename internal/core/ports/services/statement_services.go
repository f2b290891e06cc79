package services

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// ImportStatementParams carries one statement upload.
type ImportStatementParams struct {
	BankAccountID string
	FileBytes     []byte
	SheetIndex    int
	FileName      string // idempotency key together with BankAccountID
	UserID        string
}

// StatementSvcFacade imports bank statements into the ledger.
type StatementSvcFacade interface {
	// ImportStatement parses the workbook, synthesizes intra-day ordering,
	// replaces any prior import under the same file name, inserts rows and
	// runs the authoritative balance pass.
	ImportStatement(ctx context.Context, params ImportStatementParams) (*domain.StatementImportResult, error)

	// ImportStatementBatched splits very large statements into batches,
	// each an independent idempotent unit keyed by a batch-suffixed file
	// name, with bounded retry and an inter-batch pause.
	ImportStatementBatched(ctx context.Context, params ImportStatementParams, batchSize int) (*domain.StatementImportResult, error)
}
