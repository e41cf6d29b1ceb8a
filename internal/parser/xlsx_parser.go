package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"payment-recon/internal/domain"
	"payment-recon/pkg/logger"
)

// ParseXLSX reads the first sheet of a workbook. The first non-empty row is the header.
// Cells come back unformatted so amounts are not rendered with display separators.
func ParseXLSX(r io.Reader) (*domain.RawBatch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to open workbook")
		return nil, fmt.Errorf("%w: failed to open workbook: %v", domain.ErrMalformedInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var columns []string
	rows := make([]domain.RawRow, 0, len(records))

	for i, record := range records {
		if isBlank(record) {
			continue
		}

		if columns == nil {
			columns, err = mapColumns(record)
			if err != nil {
				return nil, err
			}
			continue
		}

		// trailing empty cells are dropped by the reader, extra cells are not
		if len(record) > len(columns) && !isBlank(record[len(columns):]) {
			return nil, fmt.Errorf("%w: sheet %q row %d has %d cells, header has %d",
				domain.ErrMalformedInput, sheet, i+1, len(record), len(columns))
		}

		rows = append(rows, toRawRow(columns, record))
	}

	if columns == nil {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrMalformedInput)
	}

	return &domain.RawBatch{Columns: columns, Rows: rows}, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
