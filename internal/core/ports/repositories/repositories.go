package repositories

// RepositoryProvider bundles every repository facade the services need.
type RepositoryProvider struct {
	LedgerRepo      LedgerRepositoryFacade
	ScopeRepo       ScopeRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	DocumentRepo    DocumentRepositoryFacade
	LookupRepo      LookupRepositoryFacade
	SettlementRepo  SettlementRepositoryFacade
	StatementRepo   StatementRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
