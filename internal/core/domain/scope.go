package domain

import "time"

// BankAccount owns an independent ledger partition. Balance caches the
// running balance of the chronologically-last ledger entry in the scope.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	Name          string `json:"name"`
	Bank          string `json:"bank"`
	Agency        string `json:"agency"`
	Number        string `json:"number"`
	Balance       int64  `json:"balance"` // cents, denormalized
	IsActive      bool   `json:"isActive"`
	RecalcPending bool   `json:"recalcPending"` // set while a reversal/deletion awaits recalculation
	AuditFields
}

// CashBox is the petty-cash scope. There may be more than one; callers
// always reference a cash box by id.
type CashBox struct {
	CashBoxID     string `json:"cashBoxID"`
	Name          string `json:"name"`
	Balance       int64  `json:"balance"` // cents, denormalized
	RecalcPending bool   `json:"recalcPending"`
	AuditFields
}

// BankBalance is one snapshot of a bank account's cached balance. The
// current balance is the latest snapshot; the statement importer seeds its
// carry-forward from the latest snapshot strictly before the statement's
// first transaction date.
type BankBalance struct {
	BankBalanceID string    `json:"bankBalanceID"`
	BankAccountID string    `json:"bankAccountID"`
	Balance       int64     `json:"balance"` // cents
	CreatedAt     time.Time `json:"createdAt"`
}
