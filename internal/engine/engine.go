package engine

import (
	"fmt"
	"strings"

	"payment-recon/internal/aggregator"
	"payment-recon/internal/classifier"
	"payment-recon/internal/domain"
	"payment-recon/internal/matcher"
	"payment-recon/internal/normalizer"
	"payment-recon/pkg/logger"
)

// DuplicatePolicy decides what happens when a join key repeats on either side
type DuplicatePolicy string

const (
	// DuplicateReport keeps the cross-product of same-key rows and lists the keys in the result
	DuplicateReport DuplicatePolicy = "report"
	// DuplicateReject fails the invocation with domain.ErrDuplicateReference
	DuplicateReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy validates a policy name
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DuplicateReport, DuplicateReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

type Options struct {
	SwitchColumns   domain.SwitchColumns
	GatewayColumns  domain.GatewayColumns
	DuplicatePolicy DuplicatePolicy
}

// DefaultOptions uses the stock export headers and reports duplicates
func DefaultOptions() Options {
	return Options{
		SwitchColumns:   domain.DefaultSwitchColumns(),
		GatewayColumns:  domain.DefaultGatewayColumns(),
		DuplicatePolicy: DuplicateReport,
	}
}

// ReconciliationEngine runs normalize -> join -> classify -> aggregate. It holds no
// mutable state, so one instance may serve concurrent callers.
type ReconciliationEngine struct {
	normalizer      *normalizer.Normalizer
	duplicatePolicy DuplicatePolicy
}

func NewReconciliationEngine(opts Options) *ReconciliationEngine {
	if opts.DuplicatePolicy == "" {
		opts.DuplicatePolicy = DuplicateReport
	}
	return &ReconciliationEngine{
		normalizer:      normalizer.NewNormalizer(opts.SwitchColumns, opts.GatewayColumns),
		duplicatePolicy: opts.DuplicatePolicy,
	}
}

// ReconciliationInput contains both complete ledgers, one batch per source file. Batches of
// the same ledger are concatenated in order.
type ReconciliationInput struct {
	Switch  []domain.RawBatch
	Gateway []domain.RawBatch
}

// RowsInput wraps ledgers that arrived as rows without a header
func RowsInput(switchRows, gatewayRows []domain.RawRow) ReconciliationInput {
	return ReconciliationInput{
		Switch:  []domain.RawBatch{{Rows: switchRows}},
		Gateway: []domain.RawBatch{{Rows: gatewayRows}},
	}
}

// Reconcile produces the result for one pair of ledgers. Structural problems return an
// error wrapping domain.ErrMalformedInput and no result.
func (e *ReconciliationEngine) Reconcile(input ReconciliationInput) (*domain.ReconciliationResult, error) {
	switchRows, err := concatBatches(input.Switch, e.normalizer.CheckSwitchHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load switch ledger: %w", err)
	}

	gatewayRows, err := concatBatches(input.Gateway, e.normalizer.CheckGatewayHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load gateway ledger: %w", err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"switch_count":  len(switchRows),
		"gateway_count": len(gatewayRows),
	}).Info("Starting reconciliation")

	switchRecords, err := e.normalizer.NormalizeSwitch(switchRows)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize switch ledger: %w", err)
	}

	gatewayRecords, err := e.normalizer.NormalizeGateway(gatewayRows)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize gateway ledger: %w", err)
	}

	eligible := normalizer.FilterGateway(gatewayRecords)
	joined := matcher.Join(switchRecords, eligible)

	if len(joined.DuplicateReferences) > 0 {
		if e.duplicatePolicy == DuplicateReject {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateReference, strings.Join(joined.DuplicateReferences, ", "))
		}
		logger.GetLogger().WithField("references", joined.DuplicateReferences).
			Warn("Duplicate references joined as cross-product")
	}

	buckets := classifier.Partition(joined.Rows)
	stats := aggregator.Aggregate(aggregator.Input{
		Switch:          switchRecords,
		Gateway:         gatewayRecords,
		EligibleGateway: len(eligible),
		JoinedRows:      len(joined.Rows),
		Buckets:         buckets,
	})

	logger.GetLogger().WithFields(map[string]interface{}{
		"joined_rows":          stats.JoinedRowCount,
		"reconciled":           stats.ReconciledCount,
		"missing_from_switch":  stats.MissingFromSwitchCount,
		"missing_from_gateway": stats.MissingFromGatewayCount,
		"status_mismatch":      stats.StatusMismatchCount,
	}).Info("Reconciliation completed")

	return &domain.ReconciliationResult{
		MissingFromSwitch:   buckets.MissingFromSwitch,
		MissingFromGateway:  buckets.MissingFromGateway,
		StatusMismatch:      buckets.StatusMismatch,
		DuplicateReferences: joined.DuplicateReferences,
		Stats:               stats,
	}, nil
}

// concatBatches checks every batch header, including those of files with no data rows,
// and joins the rows in batch order.
func concatBatches(batches []domain.RawBatch, checkHeader func([]string) error) ([]domain.RawRow, error) {
	var rows []domain.RawRow
	for i, batch := range batches {
		if batch.Columns != nil {
			if err := checkHeader(batch.Columns); err != nil {
				return nil, fmt.Errorf("%s: %w", batchName(batch, i), err)
			}
		}
		rows = append(rows, batch.Rows...)
	}
	return rows, nil
}

func batchName(batch domain.RawBatch, i int) string {
	if batch.Source != "" {
		return "file " + batch.Source
	}
	return fmt.Sprintf("batch %d", i+1)
}
