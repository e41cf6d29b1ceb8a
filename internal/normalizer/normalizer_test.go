package normalizer_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-recon/internal/domain"
	"payment-recon/internal/normalizer"
)

var (
	switchCols  = domain.DefaultSwitchColumns()
	gatewayCols = domain.DefaultGatewayColumns()
)

func switchRow(ref, status, amount string) domain.RawRow {
	return domain.RawRow{
		switchCols.OccurredAt:    "2024-03-01 10:00",
		switchCols.Status:        status,
		switchCols.Reference:     ref,
		switchCols.PaymentMethod: "mada",
		switchCols.Amount:        amount,
	}
}

func gatewayRow(id, credit, result string) domain.RawRow {
	return domain.RawRow{
		gatewayCols.TransactionID: id,
		gatewayCols.Credit:        credit,
		gatewayCols.RequestedAt:   "2024-03-01T10:00:05Z",
		gatewayCols.Result:        result,
	}
}

func TestParseSwitchAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"thousands separator", "1,234.50", "1234.5", true},
		{"plain integer", "100", "100", true},
		{"surrounding spaces", " 20.75 ", "20.75", true},
		{"millions", "1,000,000", "1000000", true},
		{"not a number", "abc", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizer.ParseSwitchAmount(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), "got %s", got.Decimal)
			}
		})
	}
}

func TestParseGatewayCredit(t *testing.T) {
	got := normalizer.ParseGatewayCredit("75.00")
	assert.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.NewFromInt(75)))

	// separators are only stripped from switch amounts
	assert.False(t, normalizer.ParseGatewayCredit("1,234").Valid)
	assert.False(t, normalizer.ParseGatewayCredit("n/a").Valid)
}

func TestNormalizer_NormalizeSwitch(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	rows := []domain.RawRow{
		switchRow(" R1 ", " Success ", "1,234.50"),
		switchRow("R2", "rejected", "abc"),
		switchRow("R3", "pending", ""),
	}

	records, err := n.NormalizeSwitch(rows)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "R1", records[0].Reference)
	assert.Equal(t, domain.StatusSuccess, records[0].Status)
	assert.Equal(t, "Success", records[0].StatusText)
	assert.Equal(t, "mada", records[0].PaymentMethod)
	assert.True(t, records[0].Amount.Valid)
	assert.True(t, records[0].Amount.Decimal.Equal(decimal.RequireFromString("1234.50")))

	assert.Equal(t, domain.StatusRejected, records[1].Status)
	assert.False(t, records[1].Amount.Valid)

	assert.Equal(t, domain.StatusOther, records[2].Status)
	assert.Equal(t, "pending", records[2].StatusText)
	assert.False(t, records[2].Amount.Valid)
}

func TestNormalizer_NormalizeSwitch_MissingColumn(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	bad := switchRow("R2", "success", "10")
	delete(bad, switchCols.Status)

	records, err := n.NormalizeSwitch([]domain.RawRow{switchRow("R1", "success", "10"), bad})
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
	assert.Contains(t, err.Error(), "switch row 2")
}

func TestNormalizer_NormalizeGateway(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	rows := []domain.RawRow{
		gatewayRow("G1", "100", "ack"),
		gatewayRow("G2", "0", "ACK"),
		gatewayRow("G3", "oops", "NOK"),
		gatewayRow("G4", "-5", "weird"),
	}

	records, err := n.NormalizeGateway(rows)
	require.NoError(t, err)
	require.Len(t, records, 4, "normalization never drops rows")

	assert.Equal(t, domain.ResultACK, records[0].Result)
	assert.Equal(t, "ack", records[0].ResultText)
	assert.False(t, records[2].Credit.Valid)
	assert.Equal(t, domain.ResultOther, records[3].Result)
}

func TestNormalizer_NormalizeGateway_MissingColumn(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	row := gatewayRow("G1", "100", "ACK")
	delete(row, gatewayCols.Credit)

	_, err := n.NormalizeGateway([]domain.RawRow{row})
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), `"Credit"`)
}

func TestNormalizer_EmptyInput(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	sw, err := n.NormalizeSwitch(nil)
	assert.NoError(t, err)
	assert.Empty(t, sw)

	gw, err := n.NormalizeGateway(nil)
	assert.NoError(t, err)
	assert.Empty(t, gw)
}

func TestNormalizer_CheckHeader(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)

	tests := []struct {
		name    string
		check   func([]string) error
		columns []string
		missing string
	}{
		{"switch header complete", n.CheckSwitchHeader, append(switchCols.Required(), "extra"), ""},
		{"switch header unrelated", n.CheckSwitchHeader, []string{"foo", "bar"}, switchCols.OccurredAt},
		{"switch header empty", n.CheckSwitchHeader, []string{}, switchCols.OccurredAt},
		{"gateway header complete", n.CheckGatewayHeader, gatewayCols.Required(), ""},
		{"gateway header without result", n.CheckGatewayHeader, gatewayCols.Required()[:3], gatewayCols.Result},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.columns)
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestFilterGateway(t *testing.T) {
	n := normalizer.NewNormalizer(switchCols, gatewayCols)
	records, err := n.NormalizeGateway([]domain.RawRow{
		gatewayRow("G1", "100", "ACK"),
		gatewayRow("G2", "0", "ACK"),
		gatewayRow("G3", "", "ACK"),
		gatewayRow("G4", "-1", "ACK"),
		gatewayRow("G5", "0.5", "NOK"),
	})
	require.NoError(t, err)

	eligible := normalizer.FilterGateway(records)
	require.Len(t, eligible, 2)
	assert.Equal(t, "G1", eligible[0].TransactionID)
	assert.Equal(t, "G5", eligible[1].TransactionID)
}
