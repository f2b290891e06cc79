package services

import (
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The recalculator comes first: the reversal engine depends on it.
	container.Recalc = NewRecalcService(repos.LedgerRepo, repos.ScopeRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Settlement = NewSettlementService(repos.DocumentRepo, repos.ScopeRepo, repos.LookupRepo, repos.SettlementRepo)
	container.Reversal = NewReversalService(repos.DocumentRepo, repos.LedgerRepo, repos.TransactionRepo, repos.SettlementRepo, container.Recalc)
	container.Statement = NewStatementService(
		repos.ScopeRepo,
		repos.LookupRepo,
		repos.LedgerRepo,
		repos.TransactionRepo,
		repos.StatementRepo,
		cfg.ImportBatchPause,
		cfg.ImportMaxRetries,
	)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.LookupRepo)
	container.Scope = NewScopeService(repos.ScopeRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
