package models

import "time"

// BankAccount is the database shape of a bank-account scope.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID" db:"bank_account_id"`
	Name          string `json:"name" db:"name"`
	Bank          string `json:"bank" db:"bank"`
	Agency        string `json:"agency" db:"agency"`
	Number        string `json:"number" db:"number"`
	Balance       int64  `json:"balance" db:"balance"` // cents, denormalized
	IsActive      bool   `json:"isActive" db:"is_active"`
	RecalcPending bool   `json:"recalcPending" db:"recalc_pending"`
	AuditFields
}

// CashBox is the database shape of a cash-box scope.
type CashBox struct {
	CashBoxID     string `json:"cashBoxID" db:"cash_box_id"`
	Name          string `json:"name" db:"name"`
	Balance       int64  `json:"balance" db:"balance"`
	RecalcPending bool   `json:"recalcPending" db:"recalc_pending"`
	AuditFields
}

// BankBalance is one stored balance snapshot of a bank account.
type BankBalance struct {
	BankBalanceID string    `json:"bankBalanceID" db:"bank_balance_id"`
	BankAccountID string    `json:"bankAccountID" db:"bank_account_id"`
	Balance       int64     `json:"balance" db:"balance"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
