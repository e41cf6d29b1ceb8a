package normalizer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"payment-recon/internal/domain"
	"payment-recon/pkg/logger"
)

// Normalizer turns raw ledger rows into typed records
type Normalizer struct {
	switchCols  domain.SwitchColumns
	gatewayCols domain.GatewayColumns
}

func NewNormalizer(switchCols domain.SwitchColumns, gatewayCols domain.GatewayColumns) *Normalizer {
	return &Normalizer{
		switchCols:  switchCols,
		gatewayCols: gatewayCols,
	}
}

// NormalizeSwitch converts switch rows one to one. A row lacking a required column fails
// the whole batch with domain.ErrMalformedInput.
func (n *Normalizer) NormalizeSwitch(rows []domain.RawRow) ([]domain.SwitchRecord, error) {
	records := make([]domain.SwitchRecord, 0, len(rows))

	for i, row := range rows {
		if err := validateColumns(row, n.switchCols.Required()); err != nil {
			return nil, fmt.Errorf("switch row %d: %w", i+1, err)
		}

		statusText := strings.TrimSpace(row[n.switchCols.Status])
		amountText := row[n.switchCols.Amount]
		amount := ParseSwitchAmount(amountText)
		if !amount.Valid && strings.TrimSpace(amountText) != "" {
			logger.GetLogger().WithFields(map[string]interface{}{
				"row":    i + 1,
				"amount": amountText,
			}).Debug("Unparsable switch amount, treating as null")
		}

		records = append(records, domain.SwitchRecord{
			OccurredAt:    strings.TrimSpace(row[n.switchCols.OccurredAt]),
			Status:        domain.ParseSwitchStatus(statusText),
			StatusText:    statusText,
			Reference:     strings.TrimSpace(row[n.switchCols.Reference]),
			PaymentMethod: strings.TrimSpace(row[n.switchCols.PaymentMethod]),
			Amount:        amount,
		})
	}

	return records, nil
}

// NormalizeGateway converts gateway rows one to one, without filtering on credit
func (n *Normalizer) NormalizeGateway(rows []domain.RawRow) ([]domain.GatewayRecord, error) {
	records := make([]domain.GatewayRecord, 0, len(rows))

	for i, row := range rows {
		if err := validateColumns(row, n.gatewayCols.Required()); err != nil {
			return nil, fmt.Errorf("gateway row %d: %w", i+1, err)
		}

		resultText := strings.TrimSpace(row[n.gatewayCols.Result])
		creditText := row[n.gatewayCols.Credit]
		credit := ParseGatewayCredit(creditText)
		if !credit.Valid && strings.TrimSpace(creditText) != "" {
			logger.GetLogger().WithFields(map[string]interface{}{
				"row":    i + 1,
				"credit": creditText,
			}).Debug("Unparsable gateway credit, treating as null")
		}

		records = append(records, domain.GatewayRecord{
			TransactionID: strings.TrimSpace(row[n.gatewayCols.TransactionID]),
			Credit:        credit,
			RequestedAt:   strings.TrimSpace(row[n.gatewayCols.RequestedAt]),
			Result:        domain.ParseGatewayResult(resultText),
			ResultText:    resultText,
		})
	}

	return records, nil
}

// CheckSwitchHeader fails with domain.ErrMalformedInput when a file header lacks a
// required switch column, whether or not the file has data rows.
func (n *Normalizer) CheckSwitchHeader(columns []string) error {
	return validateHeader(columns, n.switchCols.Required())
}

// CheckGatewayHeader is CheckSwitchHeader for gateway files
func (n *Normalizer) CheckGatewayHeader(columns []string) error {
	return validateHeader(columns, n.gatewayCols.Required())
}

// FilterGateway keeps the records that take part in matching: non-null credit above zero
func FilterGateway(records []domain.GatewayRecord) []domain.GatewayRecord {
	eligible := make([]domain.GatewayRecord, 0, len(records))
	for _, rec := range records {
		if rec.Eligible() {
			eligible = append(eligible, rec)
		}
	}
	return eligible
}

// ParseSwitchAmount parses a switch amount. Thousands separators are stripped.
func ParseSwitchAmount(s string) decimal.NullDecimal {
	return parseDecimal(strings.ReplaceAll(s, ",", ""))
}

// ParseGatewayCredit parses a gateway credit value as is
func ParseGatewayCredit(s string) decimal.NullDecimal {
	return parseDecimal(s)
}

func parseDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func validateColumns(row domain.RawRow, required []string) error {
	for _, col := range required {
		if _, exists := row[col]; !exists {
			return fmt.Errorf("%w: missing required column %q", domain.ErrMalformedInput, col)
		}
	}
	return nil
}

func validateHeader(columns []string, required []string) error {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("%w: missing required column %q", domain.ErrMalformedInput, col)
		}
	}
	return nil
}
