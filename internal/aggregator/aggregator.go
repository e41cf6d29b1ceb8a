package aggregator

import (
	"github.com/shopspring/decimal"

	"payment-recon/internal/classifier"
	"payment-recon/internal/domain"
)

// Input carries everything the statistics are computed from
type Input struct {
	// Switch and Gateway are the complete normalized ledgers, before the credit filter
	Switch  []domain.SwitchRecord
	Gateway []domain.GatewayRecord
	// EligibleGateway is how many gateway records passed the credit filter
	EligibleGateway int
	JoinedRows      int
	Buckets         classifier.Buckets
}

// Aggregate reduces the ledgers and buckets to Stats. Null amounts are left out of every
// sum while their rows still count.
func Aggregate(in Input) domain.Stats {
	stats := domain.Stats{
		TotalSwitchTransactions:  len(in.Switch),
		TotalGatewayTransactions: len(in.Gateway),
		ExcludedGatewayCount:     len(in.Gateway) - in.EligibleGateway,
		JoinedRowCount:           in.JoinedRows,
		ReconciledCount:          in.Buckets.Reconciled,
		MissingFromSwitchCount:   len(in.Buckets.MissingFromSwitch),
		MissingFromGatewayCount:  len(in.Buckets.MissingFromGateway),
		StatusMismatchCount:      len(in.Buckets.StatusMismatch),
		MissingFromSwitchSum:     decimal.Zero,
		MissingFromGatewaySum:    decimal.Zero,
		StatusMismatchSum:        decimal.Zero,
		TotalAmountSwitch:        decimal.Zero,
		TotalAmountGateway:       decimal.Zero,
	}

	for _, rec := range in.Switch {
		stats.TotalAmountSwitch = addNullable(stats.TotalAmountSwitch, rec.Amount)
	}
	for _, rec := range in.Gateway {
		stats.TotalAmountGateway = addNullable(stats.TotalAmountGateway, rec.Credit)
	}

	for _, rec := range in.Buckets.MissingFromSwitch {
		stats.MissingFromSwitchSum = addNullable(stats.MissingFromSwitchSum, rec.Credit)
	}
	for _, rec := range in.Buckets.MissingFromGateway {
		stats.MissingFromGatewaySum = addNullable(stats.MissingFromGatewaySum, rec.Amount)
	}
	// the gateway credit is the amount the gateway confirmed as collected
	for _, pair := range in.Buckets.StatusMismatch {
		stats.StatusMismatchSum = addNullable(stats.StatusMismatchSum, pair.Gateway.Credit)
	}

	return stats
}

func addNullable(total decimal.Decimal, v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return total
	}
	return total.Add(v.Decimal)
}
