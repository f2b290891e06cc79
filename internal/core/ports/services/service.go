package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Recalc     RecalcSvcFacade
	Ledger     LedgerSvcFacade
	Settlement SettlementSvcFacade
	Reversal   ReversalSvcFacade
	Statement  StatementSvcFacade
	Document   DocumentSvcFacade
	Scope      ScopeSvcFacade
	Reporting  ReportingSvcFacade
}
