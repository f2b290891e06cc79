package services_test

import (
	"testing"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildStatement assembles an in-memory workbook with the fixed statement
// layout: one header row, then the given data rows.
func buildStatement(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Data", "Histórico", "Valor", "C/D", "Detalhamento", "Centro de Custo"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseStatement_ValidRows(t *testing.T) {
	fileBytes := buildStatement(t, [][]interface{}{
		{"01/06/2025", "Depósito em conta", "1.000,00", "C", "TED recebida"},
		{"02/06/2025", "Pagamento fornecedor", "500,00", "D", "", "cc-operacional"},
	})

	rows, invalid, err := services.ParseStatement(fileBytes, 0)

	require.NoError(t, err)
	assert.Empty(t, invalid)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowIndex)
	assert.Equal(t, "Depósito em conta", rows[0].Historic)
	assert.Equal(t, int64(100_000), rows[0].Value)
	assert.Equal(t, domain.Credit, rows[0].Type)
	assert.Equal(t, "TED recebida", rows[0].Detailing)
	assert.Nil(t, rows[0].CostCenterID)
	assert.Equal(t, "2025-06-01T00:00:00Z", rows[0].Date.Format("2006-01-02T15:04:05Z"))

	assert.Equal(t, int64(50_000), rows[1].Value)
	assert.Equal(t, domain.Debit, rows[1].Type)
	require.NotNil(t, rows[1].CostCenterID)
	assert.Equal(t, "cc-operacional", *rows[1].CostCenterID)
}

func TestParseStatement_InvalidRowsSkippedWithReasons(t *testing.T) {
	fileBytes := buildStatement(t, [][]interface{}{
		{"01/06/2025", "Linha boa", "100,00", "C"},
		{"31/02/banana", "Data ruim", "100,00", "C"},
		{"01/06/2025", "Valor ruim", "abc", "D"},
		{"01/06/2025", "Valor negativo", "-50,00", "D"},
		{"01/06/2025", "Flag ruim", "100,00", "X"},
		{"01/06/2025", "", "100,00", "C"},
	})

	rows, invalid, err := services.ParseStatement(fileBytes, 0)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.Len(t, invalid, 5)
	assert.Equal(t, 3, invalid[0].RowIndex)
	assert.Contains(t, invalid[0].Reason, "malformed date")
	assert.Contains(t, invalid[1].Reason, "non-numeric value")
	assert.Contains(t, invalid[2].Reason, "non-positive value")
	assert.Contains(t, invalid[3].Reason, "unknown type flag")
	assert.Contains(t, invalid[4].Reason, "missing")
}

func TestParseStatement_SheetIndexOutOfRange(t *testing.T) {
	fileBytes := buildStatement(t, nil)

	_, _, err := services.ParseStatement(fileBytes, 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseStatement_GarbageBytes(t *testing.T) {
	_, _, err := services.ParseStatement([]byte("not a workbook"), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
