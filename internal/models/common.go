package models

import "time"

// AuditFields holds standard audit columns shared by persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	CreatedBy     string    `json:"createdBy" db:"created_by"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at"`
	LastUpdatedBy string    `json:"lastUpdatedBy" db:"last_updated_by"`
}
