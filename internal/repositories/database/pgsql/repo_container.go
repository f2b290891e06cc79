package pgsql

import (
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		ScopeRepo:       newPgxScopeRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		DocumentRepo:    newPgxDocumentRepository(dbPool),
		LookupRepo:      newPgxLookupRepository(dbPool),
		SettlementRepo:  newPgxSettlementRepository(dbPool),
		StatementRepo:   newPgxStatementRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
