package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
)

// Statement layout: data starts after one header row, five fixed columns
// (date, historic, value, C/D flag, detailing) plus an optional sixth
// cost-center column.
const (
	statementHeaderRows = 1

	colDate       = 0
	colHistoric   = 1
	colValue      = 2
	colTypeFlag   = 3
	colDetailing  = 4
	colCostCenter = 5
)

// ParseStatement reads a statement workbook into rows. Pure: no I/O beyond
// the in-memory workbook, so very large statements can be parsed once and
// processed batch-wise. Invalid rows are returned with reasons instead of
// failing the parse; only an unreadable workbook or missing sheet is an
// error.
func ParseStatement(fileBytes []byte, sheetIndex int) ([]domain.StatementRow, []domain.InvalidStatementRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open statement file: %v", apperrors.ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		return nil, nil, fmt.Errorf("%w: sheet index %d out of range (%d sheets)", apperrors.ErrValidation, sheetIndex, len(sheets))
	}

	rawRows, err := f.GetRows(sheets[sheetIndex])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read sheet %q: %v", apperrors.ErrValidation, sheets[sheetIndex], err)
	}

	var valid []domain.StatementRow
	var invalid []domain.InvalidStatementRow
	for i, cells := range rawRows {
		if i < statementHeaderRows {
			continue
		}
		rowIndex := i + 1 // sheet rows are 1-based
		row, reason := parseStatementRow(rowIndex, cells)
		if reason != "" {
			invalid = append(invalid, domain.InvalidStatementRow{RowIndex: rowIndex, Reason: reason})
			continue
		}
		valid = append(valid, row)
	}
	return valid, invalid, nil
}

func parseStatementRow(rowIndex int, cells []string) (domain.StatementRow, string) {
	var row domain.StatementRow

	if len(cells) <= colTypeFlag {
		return row, "row has fewer columns than the fixed layout"
	}

	dateCell := strings.TrimSpace(cells[colDate])
	historic := strings.TrimSpace(cells[colHistoric])
	valueCell := strings.TrimSpace(cells[colValue])
	flag := strings.ToUpper(strings.TrimSpace(cells[colTypeFlag]))

	if dateCell == "" || historic == "" || valueCell == "" || flag == "" {
		return row, "missing date, historic, value or type flag"
	}

	date, err := parseStatementDate(dateCell)
	if err != nil {
		return row, fmt.Sprintf("malformed date %q", dateCell)
	}

	cents, err := money.ParseLocalizedCents(valueCell)
	if err != nil {
		return row, fmt.Sprintf("non-numeric value %q", valueCell)
	}
	if cents <= 0 {
		return row, fmt.Sprintf("non-positive value %q", valueCell)
	}

	var entryType domain.EntryType
	switch flag {
	case "C":
		entryType = domain.Credit
	case "D":
		entryType = domain.Debit
	default:
		return row, fmt.Sprintf("unknown type flag %q", flag)
	}

	row = domain.StatementRow{
		RowIndex: rowIndex,
		Date:     date,
		Historic: historic,
		Value:    cents,
		Type:     entryType,
	}
	if len(cells) > colDetailing {
		row.Detailing = strings.TrimSpace(cells[colDetailing])
	}
	if len(cells) > colCostCenter {
		if cc := strings.TrimSpace(cells[colCostCenter]); cc != "" {
			row.CostCenterID = &cc
		}
	}
	return row, ""
}

// parseStatementDate accepts either "dd/mm/yyyy" (exactly three parts) or a
// numeric spreadsheet date serial. The result is midnight UTC of that day;
// ordering synthesis assigns the intra-day time later.
func parseStatementDate(cell string) (time.Time, error) {
	if strings.Contains(cell, "/") {
		parts := strings.Split(cell, "/")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("expected dd/mm/yyyy, got %q", cell)
		}
		day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return time.Time{}, err
		}
		month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return time.Time{}, err
		}
		year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, err
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("date %q out of range", cell)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return time.Time{}, err
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
