package domain

import "time"

// StatementRow is one parsed, valid bank-statement line. Date carries the
// synthesized intra-day timestamp once ordering synthesis has run; straight
// out of the parser it holds midnight UTC of the statement date.
type StatementRow struct {
	RowIndex     int       `json:"rowIndex"` // 1-based sheet row, for diagnostics
	Date         time.Time `json:"date"`
	Historic     string    `json:"historic"`
	Value        int64     `json:"value"` // cents, always positive
	Type         EntryType `json:"type"`
	Detailing    string    `json:"detailing"`
	CostCenterID *string   `json:"costCenterID"` // optional 6th-column override
}

// InvalidStatementRow records a skipped statement line and why.
type InvalidStatementRow struct {
	RowIndex int    `json:"rowIndex"`
	Reason   string `json:"reason"`
}

// StatementImportResult aggregates the outcome of one import so partial
// success stays visible to the caller.
type StatementImportResult struct {
	Imported     int   `json:"imported"`
	Skipped      int   `json:"skipped"`
	Errored      int   `json:"errored"`
	FinalBalance int64 `json:"finalBalance"` // cents
}
