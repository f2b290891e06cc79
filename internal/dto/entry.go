package dto

import (
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// EntryResponse is the API shape of one ledger entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	Date           time.Time       `json:"date"`
	Type           string          `json:"type"`
	Value          decimal.Decimal `json:"value"`
	Balance        decimal.Decimal `json:"balance"`
	Historic       string          `json:"historic"`
	Description    string          `json:"description"`
	DocumentNumber *string         `json:"documentNumber,omitempty"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	BankAccountID  *string         `json:"bankAccountID,omitempty"`
	CashBoxID      *string         `json:"cashBoxID,omitempty"`
	CSVFileName    *string         `json:"csvFileName,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToEntryResponse converts a domain.CashFlowEntry to its API shape.
func ToEntryResponse(e *domain.CashFlowEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		Date:           e.Date,
		Type:           string(e.Type),
		Value:          money.FromCents(e.Value),
		Balance:        money.FromCents(e.Balance),
		Historic:       e.Historic,
		Description:    e.Description,
		DocumentNumber: e.DocumentNumber,
		CostCenterID:   e.CostCenterID,
		BankAccountID:  e.BankAccountID,
		CashBoxID:      e.CashBoxID,
		CSVFileName:    e.CSVFileName,
		CreatedAt:      e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.CashFlowEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
