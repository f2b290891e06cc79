package models

import "time"

// BankTransaction is the database shape of the raw bank transaction log.
type BankTransaction struct {
	BankTransactionID string    `json:"bankTransactionID" db:"bank_transaction_id"`
	BankAccountID     string    `json:"bankAccountID" db:"bank_account_id"`
	Amount            int64     `json:"amount" db:"amount"` // cents
	Type              EntryType `json:"type" db:"type"`
	Description       string    `json:"description" db:"description"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
	SettlementID      *string   `json:"settlementID" db:"settlement_id"`
	CSV               bool      `json:"csv" db:"csv"`
	CSVFileName       *string   `json:"csvFileName" db:"csv_file_name"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// CashTransaction is the database shape of the raw cash-box transaction log.
type CashTransaction struct {
	CashTransactionID string    `json:"cashTransactionID" db:"cash_transaction_id"`
	CashBoxID         string    `json:"cashBoxID" db:"cash_box_id"`
	Amount            int64     `json:"amount" db:"amount"` // cents
	Type              EntryType `json:"type" db:"type"`
	Description       string    `json:"description" db:"description"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
	SettlementID      *string   `json:"settlementID" db:"settlement_id"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
