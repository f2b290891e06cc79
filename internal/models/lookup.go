package models

// PaymentMethod is the database shape of a payment method lookup row.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID" db:"payment_method_id"`
	Name            string `json:"name" db:"name"`
	AuditFields
}

// CostCenter is the database shape of a cost center lookup row.
type CostCenter struct {
	CostCenterID string `json:"costCenterID" db:"cost_center_id"`
	Name         string `json:"name" db:"name"`
	AuditFields
}
