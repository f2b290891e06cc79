package mapping

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/models"
)

// ToModelCashFlowEntry converts a domain CashFlowEntry to a model CashFlowEntry
func ToModelCashFlowEntry(d domain.CashFlowEntry) models.CashFlowEntry {
	return models.CashFlowEntry{
		EntryID:        d.EntryID,
		Date:           d.Date,
		Type:           models.EntryType(d.Type),
		Value:          d.Value,
		Balance:        d.Balance,
		Historic:       d.Historic,
		Description:    d.Description,
		DocumentNumber: d.DocumentNumber,
		CostCenterID:   d.CostCenterID,
		BankAccountID:  d.BankAccountID,
		CashBoxID:      d.CashBoxID,
		SettlementID:   d.SettlementID,
		CSVFileName:    d.CSVFileName,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainCashFlowEntry converts a model CashFlowEntry to a domain CashFlowEntry
func ToDomainCashFlowEntry(m models.CashFlowEntry) domain.CashFlowEntry {
	return domain.CashFlowEntry{
		EntryID:        m.EntryID,
		Date:           m.Date,
		Type:           domain.EntryType(m.Type),
		Value:          m.Value,
		Balance:        m.Balance,
		Historic:       m.Historic,
		Description:    m.Description,
		DocumentNumber: m.DocumentNumber,
		CostCenterID:   m.CostCenterID,
		BankAccountID:  m.BankAccountID,
		CashBoxID:      m.CashBoxID,
		SettlementID:   m.SettlementID,
		CSVFileName:    m.CSVFileName,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainCashFlowEntries converts a slice of model entries.
func ToDomainCashFlowEntries(ms []models.CashFlowEntry) []domain.CashFlowEntry {
	out := make([]domain.CashFlowEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCashFlowEntry(m)
	}
	return out
}
