package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"payment-recon/internal/domain"
)

const (
	SheetMissingFromSwitch  = "Missing from Switch"
	SheetMissingFromGateway = "Missing from Gateway"
	SheetStatusMismatch     = "Status Mismatch"
	SheetSummary            = "Summary"
)

// Table is one bucket laid out as text cells. Amount marks columns holding decimals.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	Amount map[int]bool
}

// Tables lays the three buckets out in fixed order
func Tables(result *domain.ReconciliationResult) []Table {
	missingFromSwitch := Table{
		Name:   SheetMissingFromSwitch,
		Header: []string{"Transaction ID", "Credit", "Request Timestamp", "Result"},
		Rows:   make([][]string, 0, len(result.MissingFromSwitch)),
		Amount: map[int]bool{1: true},
	}
	for _, g := range result.MissingFromSwitch {
		missingFromSwitch.Rows = append(missingFromSwitch.Rows, []string{
			g.TransactionID, formatAmount(g.Credit), g.RequestedAt, g.ResultText,
		})
	}

	missingFromGateway := Table{
		Name:   SheetMissingFromGateway,
		Header: []string{"Transaction Time", "Status", "Reference", "Payment Method", "Amount"},
		Rows:   make([][]string, 0, len(result.MissingFromGateway)),
		Amount: map[int]bool{4: true},
	}
	for _, s := range result.MissingFromGateway {
		missingFromGateway.Rows = append(missingFromGateway.Rows, []string{
			s.OccurredAt, s.StatusText, s.Reference, s.PaymentMethod, formatAmount(s.Amount),
		})
	}

	statusMismatch := Table{
		Name: SheetStatusMismatch,
		Header: []string{
			"Reference", "Transaction Time", "Switch Status", "Payment Method", "Switch Amount",
			"Gateway Result", "Gateway Credit", "Request Timestamp",
		},
		Rows:   make([][]string, 0, len(result.StatusMismatch)),
		Amount: map[int]bool{4: true, 6: true},
	}
	for _, p := range result.StatusMismatch {
		statusMismatch.Rows = append(statusMismatch.Rows, []string{
			p.Switch.Reference, p.Switch.OccurredAt, p.Switch.StatusText, p.Switch.PaymentMethod,
			formatAmount(p.Switch.Amount), p.Gateway.ResultText, formatAmount(p.Gateway.Credit),
			p.Gateway.RequestedAt,
		})
	}

	return []Table{missingFromSwitch, missingFromGateway, statusMismatch}
}

// SummaryRows renders Stats as label/value pairs
func SummaryRows(stats domain.Stats) [][2]string {
	return [][2]string{
		{"Total Switch Transactions", strconv.Itoa(stats.TotalSwitchTransactions)},
		{"Total Gateway Transactions", strconv.Itoa(stats.TotalGatewayTransactions)},
		{"Gateway Rows Without Positive Credit", strconv.Itoa(stats.ExcludedGatewayCount)},
		{"Reconciled Rows", strconv.Itoa(stats.ReconciledCount)},
		{"Missing from Switch", strconv.Itoa(stats.MissingFromSwitchCount)},
		{"Missing from Switch Amount", stats.MissingFromSwitchSum.String()},
		{"Missing from Gateway", strconv.Itoa(stats.MissingFromGatewayCount)},
		{"Missing from Gateway Amount", stats.MissingFromGatewaySum.String()},
		{"Status Mismatch", strconv.Itoa(stats.StatusMismatchCount)},
		{"Status Mismatch Amount", stats.StatusMismatchSum.String()},
		{"Total Amount Switch", stats.TotalAmountSwitch.String()},
		{"Total Amount Gateway", stats.TotalAmountGateway.String()},
	}
}

func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
