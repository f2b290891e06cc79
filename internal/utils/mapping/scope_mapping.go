package mapping

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/models"
)

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		Name:          m.Name,
		Bank:          m.Bank,
		Agency:        m.Agency,
		Number:        m.Number,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		RecalcPending: m.RecalcPending,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		Name:          d.Name,
		Bank:          d.Bank,
		Agency:        d.Agency,
		Number:        d.Number,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		RecalcPending: d.RecalcPending,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashBox converts a model CashBox to a domain CashBox
func ToDomainCashBox(m models.CashBox) domain.CashBox {
	return domain.CashBox{
		CashBoxID:     m.CashBoxID,
		Name:          m.Name,
		Balance:       m.Balance,
		RecalcPending: m.RecalcPending,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashBox converts a domain CashBox to a model CashBox
func ToModelCashBox(d domain.CashBox) models.CashBox {
	return models.CashBox{
		CashBoxID:     d.CashBoxID,
		Name:          d.Name,
		Balance:       d.Balance,
		RecalcPending: d.RecalcPending,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankBalance converts a model BankBalance to a domain BankBalance
func ToDomainBankBalance(m models.BankBalance) domain.BankBalance {
	return domain.BankBalance{
		BankBalanceID: m.BankBalanceID,
		BankAccountID: m.BankAccountID,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
	}
}
