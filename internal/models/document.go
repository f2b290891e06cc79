package models

import "time"

// DocumentKind mirrors the payable/receivable discriminator as stored.
type DocumentKind string

const (
	Payable    DocumentKind = "PAYABLE"
	Receivable DocumentKind = "RECEIVABLE"
)

// DocumentStatus is the stored document lifecycle state. OVERDUE is derived
// at read time, never persisted.
type DocumentStatus string

const (
	Pending   DocumentStatus = "PENDING"
	Paid      DocumentStatus = "PAID"
	Cancelled DocumentStatus = "CANCELLED"
)

// Document is the database shape of an accounts payable/receivable row.
type Document struct {
	DocumentID      string         `json:"documentID" db:"document_id"`
	Kind            DocumentKind   `json:"kind" db:"kind"`
	DocumentNumber  string         `json:"documentNumber" db:"document_number"`
	Description     string         `json:"description" db:"description"`
	Value           int64          `json:"value" db:"value"` // cents
	Status          DocumentStatus `json:"status" db:"status"`
	DueDate         time.Time      `json:"dueDate" db:"due_date"`
	SettledValue    int64          `json:"settledValue" db:"settled_value"`
	Fine            int64          `json:"fine" db:"fine"`
	Interest        int64          `json:"interest" db:"interest"`
	Discount        int64          `json:"discount" db:"discount"`
	SettlementDate  *time.Time     `json:"settlementDate" db:"settlement_date"`
	SettlementID    *string        `json:"settlementID" db:"settlement_id"`
	PaymentMethodID *string        `json:"paymentMethodID" db:"payment_method_id"`
	CostCenterID    *string        `json:"costCenterID" db:"cost_center_id"`
	BankAccountID   *string        `json:"bankAccountID" db:"bank_account_id"`
	CashBoxID       *string        `json:"cashBoxID" db:"cash_box_id"`
	Observation     string         `json:"observation" db:"observation"`
	AuditFields
}
