package domain

import "github.com/shopspring/decimal"

// Membership tells which sides of the join a row came from
type Membership string

const (
	SwitchOnly  Membership = "SWITCH_ONLY"
	GatewayOnly Membership = "GATEWAY_ONLY"
	Both        Membership = "BOTH"
)

// JoinedRow is one product row of the outer join. Switch is nil for GatewayOnly rows and
// Gateway is nil for SwitchOnly rows.
type JoinedRow struct {
	Switch     *SwitchRecord
	Gateway    *GatewayRecord
	Membership Membership
}

// Outcome is the classification of a joined row
type Outcome string

const (
	MissingFromSwitch  Outcome = "MISSING_FROM_SWITCH"
	MissingFromGateway Outcome = "MISSING_FROM_GATEWAY"
	StatusMismatch     Outcome = "STATUS_MISMATCH"
	Reconciled         Outcome = "RECONCILED"
)

// MatchedPair is a switch record and the gateway record sharing its reference
type MatchedPair struct {
	Switch  SwitchRecord  `json:"switch"`
	Gateway GatewayRecord `json:"gateway"`
}

// Stats holds the aggregate figures of one reconciliation
type Stats struct {
	TotalSwitchTransactions  int             `json:"total_switch_transactions"`
	TotalGatewayTransactions int             `json:"total_gateway_transactions"`
	ExcludedGatewayCount     int             `json:"excluded_gateway_count"`
	JoinedRowCount           int             `json:"joined_row_count"`
	ReconciledCount          int             `json:"reconciled_count"`
	MissingFromSwitchCount   int             `json:"missing_from_switch_count"`
	MissingFromSwitchSum     decimal.Decimal `json:"missing_from_switch_sum"`
	MissingFromGatewayCount  int             `json:"missing_from_gateway_count"`
	MissingFromGatewaySum    decimal.Decimal `json:"missing_from_gateway_sum"`
	StatusMismatchCount      int             `json:"status_mismatch_count"`
	StatusMismatchSum        decimal.Decimal `json:"status_mismatch_sum"`
	TotalAmountSwitch        decimal.Decimal `json:"total_amount_switch"`
	TotalAmountGateway       decimal.Decimal `json:"total_amount_gateway"`
}

// ReconciliationResult is the full output of one engine invocation
type ReconciliationResult struct {
	MissingFromSwitch   []GatewayRecord `json:"missing_from_switch"`
	MissingFromGateway  []SwitchRecord  `json:"missing_from_gateway"`
	StatusMismatch      []MatchedPair   `json:"status_mismatch"`
	DuplicateReferences []string        `json:"duplicate_references,omitempty"`
	Stats               Stats           `json:"stats"`
}
