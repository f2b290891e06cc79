package domain

import "time"

// BankTransaction is the raw scope-local transaction log for a bank
// account. Every ledger entry touching a bank account has a matching row
// here, correlated by SettlementID when one was minted, or by the
// amount/type/description/time heuristics for rows that predate it.
type BankTransaction struct {
	BankTransactionID string    `json:"bankTransactionID"`
	BankAccountID     string    `json:"bankAccountID"`
	Amount            int64     `json:"amount"` // cents, always positive
	Type              EntryType `json:"type"`
	Description       string    `json:"description"`
	Timestamp         time.Time `json:"timestamp"`
	SettlementID      *string   `json:"settlementID"`
	CSV               bool      `json:"csv"` // originated from a statement import
	CSVFileName       *string   `json:"csvFileName"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CashTransaction is the raw transaction log for a cash box.
type CashTransaction struct {
	CashTransactionID string    `json:"cashTransactionID"`
	CashBoxID         string    `json:"cashBoxID"`
	Amount            int64     `json:"amount"` // cents, always positive
	Type              EntryType `json:"type"`
	Description       string    `json:"description"`
	Timestamp         time.Time `json:"timestamp"`
	SettlementID      *string   `json:"settlementID"`
	CreatedAt         time.Time `json:"createdAt"`
}
