package mapping

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:      d.DocumentID,
		Kind:            models.DocumentKind(d.Kind),
		DocumentNumber:  d.DocumentNumber,
		Description:     d.Description,
		Value:           d.Value,
		Status:          models.DocumentStatus(d.Status),
		DueDate:         d.DueDate,
		SettledValue:    d.SettledValue,
		Fine:            d.Fine,
		Interest:        d.Interest,
		Discount:        d.Discount,
		SettlementDate:  d.SettlementDate,
		SettlementID:    d.SettlementID,
		PaymentMethodID: d.PaymentMethodID,
		CostCenterID:    d.CostCenterID,
		BankAccountID:   d.BankAccountID,
		CashBoxID:       d.CashBoxID,
		Observation:     d.Observation,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:      m.DocumentID,
		Kind:            domain.DocumentKind(m.Kind),
		DocumentNumber:  m.DocumentNumber,
		Description:     m.Description,
		Value:           m.Value,
		Status:          domain.DocumentStatus(m.Status),
		DueDate:         m.DueDate,
		SettledValue:    m.SettledValue,
		Fine:            m.Fine,
		Interest:        m.Interest,
		Discount:        m.Discount,
		SettlementDate:  m.SettlementDate,
		SettlementID:    m.SettlementID,
		PaymentMethodID: m.PaymentMethodID,
		CostCenterID:    m.CostCenterID,
		BankAccountID:   m.BankAccountID,
		CashBoxID:       m.CashBoxID,
		Observation:     m.Observation,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
