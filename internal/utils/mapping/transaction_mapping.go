package mapping

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/models"
)

// ToModelBankTransaction converts a domain BankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID: d.BankTransactionID,
		BankAccountID:     d.BankAccountID,
		Amount:            d.Amount,
		Type:              models.EntryType(d.Type),
		Description:       d.Description,
		Timestamp:         d.Timestamp,
		SettlementID:      d.SettlementID,
		CSV:               d.CSV,
		CSVFileName:       d.CSVFileName,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainBankTransaction converts a model BankTransaction to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: m.BankTransactionID,
		BankAccountID:     m.BankAccountID,
		Amount:            m.Amount,
		Type:              domain.EntryType(m.Type),
		Description:       m.Description,
		Timestamp:         m.Timestamp,
		SettlementID:      m.SettlementID,
		CSV:               m.CSV,
		CSVFileName:       m.CSVFileName,
		CreatedAt:         m.CreatedAt,
	}
}

// ToModelCashTransaction converts a domain CashTransaction to a model CashTransaction
func ToModelCashTransaction(d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		CashTransactionID: d.CashTransactionID,
		CashBoxID:         d.CashBoxID,
		Amount:            d.Amount,
		Type:              models.EntryType(d.Type),
		Description:       d.Description,
		Timestamp:         d.Timestamp,
		SettlementID:      d.SettlementID,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainCashTransaction converts a model CashTransaction to a domain CashTransaction
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		CashTransactionID: m.CashTransactionID,
		CashBoxID:         m.CashBoxID,
		Amount:            m.Amount,
		Type:              domain.EntryType(m.Type),
		Description:       m.Description,
		Timestamp:         m.Timestamp,
		SettlementID:      m.SettlementID,
		CreatedAt:         m.CreatedAt,
	}
}
