package domain

// FallbackCostCenterName is resolved by name for statement rows that carry
// no cost-center column.
const FallbackCostCenterName = "Transações Bancárias"

// PaymentMethod is a lookup row referenced by settlements.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Name            string `json:"name"`
	AuditFields
}

// CostCenter attributes ledger entries and settlements to an area.
type CostCenter struct {
	CostCenterID string `json:"costCenterID"`
	Name         string `json:"name"`
	AuditFields
}
