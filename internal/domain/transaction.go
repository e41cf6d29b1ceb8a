package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawRow is one parsed row of a ledger export, keyed by column header
type RawRow map[string]string

// RawBatch is one decoded ledger file. Columns is the file's header; it is nil when the
// rows arrived without one (decoded JSON objects), and then only the rows are checked.
type RawBatch struct {
	Source  string
	Columns []string
	Rows    []RawRow
}

// SwitchStatus is the outcome recorded by the internal payment switch
type SwitchStatus string

const (
	StatusSuccess  SwitchStatus = "success"
	StatusRejected SwitchStatus = "rejected"
	StatusFailed   SwitchStatus = "failed"
	StatusTimeOut  SwitchStatus = "time_out"
	StatusOther    SwitchStatus = "other"
)

var statusNormalizer = strings.NewReplacer("-", "_", " ", "_")

// ParseSwitchStatus maps free text onto SwitchStatus. Anything unrecognized is StatusOther.
func ParseSwitchStatus(raw string) SwitchStatus {
	s := statusNormalizer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "success":
		return StatusSuccess
	case "rejected":
		return StatusRejected
	case "failed":
		return StatusFailed
	case "time_out", "timeout":
		return StatusTimeOut
	default:
		return StatusOther
	}
}

// IsKnownFailure reports whether the switch itself recorded the attempt as unsuccessful,
// in which case no counterpart is expected on the gateway side.
func (s SwitchStatus) IsKnownFailure() bool {
	switch s {
	case StatusRejected, StatusFailed, StatusTimeOut:
		return true
	}
	return false
}

// GatewayResult is the result code reported by the payment gateway
type GatewayResult string

const (
	ResultACK   GatewayResult = "ACK"
	ResultNOK   GatewayResult = "NOK"
	ResultOther GatewayResult = "OTHER"
)

// ParseGatewayResult maps free text onto GatewayResult. Anything unrecognized is ResultOther.
func ParseGatewayResult(raw string) GatewayResult {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACK":
		return ResultACK
	case "NOK":
		return ResultNOK
	default:
		return ResultOther
	}
}

// SwitchRecord represents one row of the internal switch ledger
type SwitchRecord struct {
	OccurredAt    string              `json:"occurred_at"`
	Status        SwitchStatus        `json:"status"`
	StatusText    string              `json:"status_text"`
	Reference     string              `json:"reference"`
	PaymentMethod string              `json:"payment_method"`
	Amount        decimal.NullDecimal `json:"amount"`
}

// GatewayRecord represents one row of the payment gateway ledger
type GatewayRecord struct {
	TransactionID string              `json:"transaction_id"`
	Credit        decimal.NullDecimal `json:"credit"`
	RequestedAt   string              `json:"requested_at"`
	Result        GatewayResult       `json:"result"`
	ResultText    string              `json:"result_text"`
}

// Eligible reports whether the record takes part in matching (credit present and > 0)
func (g GatewayRecord) Eligible() bool {
	return g.Credit.Valid && g.Credit.Decimal.IsPositive()
}
