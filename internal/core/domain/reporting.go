package domain

import "time"

// CashFlowSummary aggregates a scope's ledger over a period, read-only.
type CashFlowSummary struct {
	Scope          Scope     `json:"scope"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Credits        int64     `json:"credits"` // cents
	Debits         int64     `json:"debits"`  // cents
	Net            int64     `json:"net"`     // credits - debits, cents
	ClosingBalance int64     `json:"closingBalance"`
	EntryCount     int       `json:"entryCount"`
}
