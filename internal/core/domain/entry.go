package domain

import "time"

// EntryType indicates whether a ledger entry credits or debits its scope.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// CashFlowEntry is one monetary movement in a scope's ledger. The ledger is
// append-mostly; rows are removed only through the reversal engine.
type CashFlowEntry struct {
	EntryID        string    `json:"entryID"`
	Date           time.Time `json:"date"` // effective instant, full timestamp
	Type           EntryType `json:"type"`
	Value          int64     `json:"value"`   // cents, always positive
	Balance        int64     `json:"balance"` // scope running balance after this entry, cents
	Historic       string    `json:"historic"`
	Description    string    `json:"description"`
	DocumentNumber *string   `json:"documentNumber"` // correlation to a payable/receivable
	CostCenterID   *string   `json:"costCenterID"`
	BankAccountID  *string   `json:"bankAccountID"` // exactly one of BankAccountID
	CashBoxID      *string   `json:"cashBoxID"`     // or CashBoxID is set
	SettlementID   *string   `json:"settlementID"`  // correlation id minted at settlement
	CSVFileName    *string   `json:"csvFileName"`   // set for statement-imported rows
	CreatedAt      time.Time `json:"createdAt"`     // tie-breaker for entries sharing Date
}

// SignedValue returns the entry's effect on the scope balance in cents.
func (e CashFlowEntry) SignedValue() int64 {
	if e.Type == Debit {
		return -e.Value
	}
	return e.Value
}

// Scope identifies the ledger partition an entry belongs to: a bank account
// or a cash box, never both.
type Scope struct {
	BankAccountID *string `json:"bankAccountID,omitempty"`
	CashBoxID     *string `json:"cashBoxID,omitempty"`
}

// BankScope builds a bank-account scope.
func BankScope(bankAccountID string) Scope {
	return Scope{BankAccountID: &bankAccountID}
}

// CashScope builds a cash-box scope.
func CashScope(cashBoxID string) Scope {
	return Scope{CashBoxID: &cashBoxID}
}

// Valid reports whether exactly one side of the scope is set.
func (s Scope) Valid() bool {
	return (s.BankAccountID != nil) != (s.CashBoxID != nil)
}

// IsBank reports whether the scope is a bank account.
func (s Scope) IsBank() bool {
	return s.BankAccountID != nil
}

// String renders the scope for log output.
func (s Scope) String() string {
	if s.BankAccountID != nil {
		return "bank-account:" + *s.BankAccountID
	}
	if s.CashBoxID != nil {
		return "cash-box:" + *s.CashBoxID
	}
	return "unscoped"
}

// Scope returns the scope the entry belongs to.
func (e CashFlowEntry) Scope() Scope {
	return Scope{BankAccountID: e.BankAccountID, CashBoxID: e.CashBoxID}
}

// Before orders entries chronologically by (Date, CreatedAt). The CreatedAt
// tie-breaker keeps entries sharing an instant in insertion order, which is
// what makes recalculation deterministic.
func (e CashFlowEntry) Before(other CashFlowEntry) bool {
	if !e.Date.Equal(other.Date) {
		return e.Date.Before(other.Date)
	}
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}
	return e.EntryID < other.EntryID
}
