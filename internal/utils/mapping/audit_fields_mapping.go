package mapping

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
