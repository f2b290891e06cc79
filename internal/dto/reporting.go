package dto

import (
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CashFlowSummaryResponse is the API shape of a period summary.
type CashFlowSummaryResponse struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Credits        decimal.Decimal `json:"credits"`
	Debits         decimal.Decimal `json:"debits"`
	Net            decimal.Decimal `json:"net"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	EntryCount     int             `json:"entryCount"`
}

// ToCashFlowSummaryResponse converts a domain summary to its API shape.
func ToCashFlowSummaryResponse(s *domain.CashFlowSummary) CashFlowSummaryResponse {
	return CashFlowSummaryResponse{
		From:           s.From,
		To:             s.To,
		Credits:        money.FromCents(s.Credits),
		Debits:         money.FromCents(s.Debits),
		Net:            money.FromCents(s.Net),
		ClosingBalance: money.FromCents(s.ClosingBalance),
		EntryCount:     s.EntryCount,
	}
}
