package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"payment-recon/internal/domain"
	"payment-recon/pkg/logger"
)

const utf8BOM = "\ufeff"

// ParseFile decodes an uploaded ledger file, choosing the decoder by file extension.
// The returned batch carries name as its Source.
func ParseFile(name string, r io.Reader) (*domain.RawBatch, error) {
	var (
		batch *domain.RawBatch
		err   error
	)

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		batch, err = ParseCSV(r)
	case ".xlsx":
		batch, err = ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedFormat, ext, name)
	}
	if err != nil {
		return nil, err
	}

	batch.Source = name
	return batch, nil
}

// ParseCSV reads a header row followed by data rows. Every data row must have as many
// fields as the header.
func ParseCSV(r io.Reader) (*domain.RawBatch, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrMalformedInput)
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to read CSV header")
		return nil, fmt.Errorf("%w: failed to read header: %v", domain.ErrMalformedInput, err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedInput, parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		rows = append(rows, toRawRow(columns, record))
	}

	return &domain.RawBatch{Columns: columns, Rows: rows}, nil
}

// mapColumns cleans the header cells. Blank and repeated names are rejected because the
// row mapping would silently lose data.
func mapColumns(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))

	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		name := strings.TrimSpace(col)
		if name == "" {
			return nil, fmt.Errorf("%w: blank column name at position %d", domain.ErrMalformedInput, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrMalformedInput, name)
		}
		seen[name] = true
		columns[i] = name
	}

	return columns, nil
}

func toRawRow(columns []string, record []string) domain.RawRow {
	row := make(domain.RawRow, len(columns))
	for i, col := range columns {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
