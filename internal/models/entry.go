package models

import "time"

// EntryType mirrors the ledger direction enum as stored.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// CashFlowEntry is the database shape of one ledger row.
type CashFlowEntry struct {
	EntryID        string    `json:"entryID" db:"entry_id"`
	Date           time.Time `json:"date" db:"date"`
	Type           EntryType `json:"type" db:"type"`
	Value          int64     `json:"value" db:"value"`     // cents
	Balance        int64     `json:"balance" db:"balance"` // cents
	Historic       string    `json:"historic" db:"historic"`
	Description    string    `json:"description" db:"description"`
	DocumentNumber *string   `json:"documentNumber" db:"document_number"`
	CostCenterID   *string   `json:"costCenterID" db:"cost_center_id"`
	BankAccountID  *string   `json:"bankAccountID" db:"bank_account_id"`
	CashBoxID      *string   `json:"cashBoxID" db:"cash_box_id"`
	SettlementID   *string   `json:"settlementID" db:"settlement_id"`
	CSVFileName    *string   `json:"csvFileName" db:"csv_file_name"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
