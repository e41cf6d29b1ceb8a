package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"payment-recon/internal/domain"
)

// WriteCSV writes the three bucket tables one after another, each with its own header,
// separated by a single blank line.
func WriteCSV(w io.Writer, result *domain.ReconciliationResult) error {
	for i, table := range Tables(result) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("failed to write table separator: %w", err)
			}
		}

		cw := csv.NewWriter(w)
		if err := cw.Write(table.Header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", table.Name, err)
		}
		if err := cw.WriteAll(table.Rows); err != nil {
			return fmt.Errorf("failed to write %s rows: %w", table.Name, err)
		}
	}
	return nil
}
