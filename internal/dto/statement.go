package dto

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// ImportStatementResponse reports the aggregate outcome of one statement
// import so partial success stays visible to the caller.
type ImportStatementResponse struct {
	Imported     int             `json:"imported"`
	Skipped      int             `json:"skipped"`
	Errored      int             `json:"errored"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}

// ToImportStatementResponse converts a domain import result to its API shape.
func ToImportStatementResponse(r *domain.StatementImportResult) ImportStatementResponse {
	return ImportStatementResponse{
		Imported:     r.Imported,
		Skipped:      r.Skipped,
		Errored:      r.Errored,
		FinalBalance: money.FromCents(r.FinalBalance),
	}
}
