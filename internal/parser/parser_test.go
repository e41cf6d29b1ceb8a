package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payment-recon/internal/domain"
	"payment-recon/internal/parser"
)

func TestParseCSV(t *testing.T) {
	csvContent := `TransactionId,Credit,RequestTimestamp,Result
G1,100.50,2024-01-15 10:00:00,ACK
G2,"1,200",2024-01-16 11:00:00,NOK
G3,,2024-01-17 12:00:00,ACK
`

	batch, err := parser.ParseCSV(strings.NewReader(csvContent))
	require.NoError(t, err)
	assert.Equal(t, []string{"TransactionId", "Credit", "RequestTimestamp", "Result"}, batch.Columns)

	rows := batch.Rows
	require.Len(t, rows, 3)

	assert.Equal(t, "G1", rows[0]["TransactionId"])
	assert.Equal(t, "100.50", rows[0]["Credit"])
	assert.Equal(t, "1,200", rows[1]["Credit"])
	assert.Equal(t, "", rows[2]["Credit"])
	assert.Equal(t, "ACK", rows[2]["Result"])
}

func TestParseCSV_StripsBOM(t *testing.T) {
	csvContent := "\ufeffتاريخ العملية,المبلغ (ريال)\n2024-01-15,\"1,234.50\"\n"

	batch, err := parser.ParseCSV(strings.NewReader(csvContent))
	require.NoError(t, err)
	assert.Equal(t, "تاريخ العملية", batch.Columns[0])

	rows := batch.Rows
	require.Len(t, rows, 1)

	assert.Equal(t, "2024-01-15", rows[0]["تاريخ العملية"])
	assert.Equal(t, "1,234.50", rows[0]["المبلغ (ريال)"])
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	batch, err := parser.ParseCSV(strings.NewReader("TransactionId,Credit\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"TransactionId", "Credit"}, batch.Columns)
	assert.NotNil(t, batch.Rows)
	assert.Empty(t, batch.Rows)
}

func TestParseFile_HeaderOnlyKeepsColumns(t *testing.T) {
	batch, err := parser.ParseFile("azm.csv", strings.NewReader("foo,bar\n"))
	require.NoError(t, err)
	assert.Equal(t, "azm.csv", batch.Source)
	assert.Equal(t, []string{"foo", "bar"}, batch.Columns)
	assert.Empty(t, batch.Rows)

	data := buildWorkbook(t, [][]interface{}{{"foo", "bar"}})
	batch, err = parser.ParseFile("hyperpay.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "hyperpay.xlsx", batch.Source)
	assert.Equal(t, []string{"foo", "bar"}, batch.Columns)
	assert.Empty(t, batch.Rows)
}

func TestParseCSV_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"empty file", "", "missing header"},
		{"ragged row", "a,b,c\n1,2,3\n4,5\n", "line 3"},
		{"blank column name", "a,,c\n1,2,3\n", "blank column"},
		{"duplicate column name", "a,b,a\n1,2,3\n", "duplicate column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := parser.ParseCSV(strings.NewReader(tt.content))
			assert.Nil(t, batch)
			assert.ErrorIs(t, err, domain.ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{},
		{"TransactionId", "Credit", "RequestTimestamp", "Result"},
		{"G1", 100.5, "2024-01-15 10:00:00", "ACK"},
		{},
		{"G2", "75", "2024-01-16 11:00:00"},
	})

	batch, err := parser.ParseXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, batch.Columns, 4)

	rows := batch.Rows
	require.Len(t, rows, 2)

	assert.Equal(t, "G1", rows[0]["TransactionId"])
	assert.Equal(t, "100.5", rows[0]["Credit"])
	assert.Equal(t, "ACK", rows[0]["Result"])

	assert.Equal(t, "75", rows[1]["Credit"])
	value, ok := rows[1]["Result"]
	assert.True(t, ok, "short rows are padded to the header")
	assert.Equal(t, "", value)
}

func TestParseXLSX_InvalidFormat(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := parser.ParseXLSX(strings.NewReader("definitely,not,xlsx"))
		assert.ErrorIs(t, err, domain.ErrMalformedInput)
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, err := parser.ParseXLSX(bytes.NewReader(buildWorkbook(t, nil)))
		assert.ErrorIs(t, err, domain.ErrMalformedInput)
	})

	t.Run("row wider than header", func(t *testing.T) {
		data := buildWorkbook(t, [][]interface{}{
			{"a", "b"},
			{"1", "2", "3"},
		})
		_, err := parser.ParseXLSX(bytes.NewReader(data))
		assert.ErrorIs(t, err, domain.ErrMalformedInput)
	})
}

func TestParseFile(t *testing.T) {
	batch, err := parser.ParseFile("Switch.CSV", strings.NewReader("ref\nR1\n"))
	require.NoError(t, err)
	assert.Equal(t, "Switch.CSV", batch.Source)
	assert.Equal(t, []domain.RawRow{{"ref": "R1"}}, batch.Rows)

	data := buildWorkbook(t, [][]interface{}{{"ref"}, {"R2"}})
	batch, err = parser.ParseFile("gateway.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "gateway.xlsx", batch.Source)
	assert.Equal(t, []domain.RawRow{{"ref": "R2"}}, batch.Rows)

	_, err = parser.ParseFile("gateway.xls", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
