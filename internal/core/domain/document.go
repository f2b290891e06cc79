package domain

import "time"

// DocumentKind distinguishes accounts payable from accounts receivable.
// Settlement logic is symmetric; only the ledger direction differs.
type DocumentKind string

const (
	Payable    DocumentKind = "PAYABLE"
	Receivable DocumentKind = "RECEIVABLE"
)

// DocumentStatus is the stored lifecycle state of a document. OVERDUE is
// never stored; it is derived from PENDING plus a past due date.
type DocumentStatus string

const (
	Pending   DocumentStatus = "PENDING"
	Paid      DocumentStatus = "PAID"
	Cancelled DocumentStatus = "CANCELLED"
	Overdue   DocumentStatus = "OVERDUE" // derived only
)

// Document is an accounts payable or receivable. Its link to ledger
// entries is the DocumentNumber string plus, after settlement, the
// SettlementID correlation key.
type Document struct {
	DocumentID      string         `json:"documentID"`
	Kind            DocumentKind   `json:"kind"`
	DocumentNumber  string         `json:"documentNumber"`
	Description     string         `json:"description"`
	Value           int64          `json:"value"` // cents
	Status          DocumentStatus `json:"status"`
	DueDate         time.Time      `json:"dueDate"`
	SettledValue    int64          `json:"settledValue"` // paidValue / receivedValue, cents
	Fine            int64          `json:"fine"`         // cents
	Interest        int64          `json:"interest"`     // cents
	Discount        int64          `json:"discount"`     // cents
	SettlementDate  *time.Time     `json:"settlementDate"` // paymentDate / receiptDate
	SettlementID    *string        `json:"settlementID"`
	PaymentMethodID *string        `json:"paymentMethodID"`
	CostCenterID    *string        `json:"costCenterID"`
	BankAccountID   *string        `json:"bankAccountID"` // scope the settlement posted to
	CashBoxID       *string        `json:"cashBoxID"`
	Observation     string         `json:"observation"`
	AuditFields
}

// EntryType returns the ledger direction a settlement of this document
// posts: payables debit the scope, receivables credit it.
func (d Document) EntryType() EntryType {
	if d.Kind == Payable {
		return Debit
	}
	return Credit
}

// EffectiveStatus derives OVERDUE for pending documents past their due
// date. The stored status is never OVERDUE.
func (d Document) EffectiveStatus(now time.Time) DocumentStatus {
	if d.Status == Pending && d.DueDate.Before(now) {
		return Overdue
	}
	return d.Status
}

// SettlementAmount computes value - discount + fine + interest in cents.
func (d Document) SettlementAmount() int64 {
	return d.Value - d.Discount + d.Fine + d.Interest
}
