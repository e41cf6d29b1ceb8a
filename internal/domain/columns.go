package domain

// SwitchColumns names the switch export headers read by the normalizer
type SwitchColumns struct {
	OccurredAt    string
	Status        string
	Reference     string
	PaymentMethod string
	Amount        string
}

// DefaultSwitchColumns returns the headers of the AZM switch export
func DefaultSwitchColumns() SwitchColumns {
	return SwitchColumns{
		OccurredAt:    "تاريخ العملية",
		Status:        "حالة العملية",
		Reference:     "تفاصيل العملية (رقم الحوالة)",
		PaymentMethod: "وسيلة الدفع",
		Amount:        "المبلغ (ريال)",
	}
}

func (c SwitchColumns) Required() []string {
	return []string{c.OccurredAt, c.Status, c.Reference, c.PaymentMethod, c.Amount}
}

// GatewayColumns names the gateway export headers read by the normalizer
type GatewayColumns struct {
	TransactionID string
	Credit        string
	RequestedAt   string
	Result        string
}

// DefaultGatewayColumns returns the headers of the HyperPay gateway export
func DefaultGatewayColumns() GatewayColumns {
	return GatewayColumns{
		TransactionID: "TransactionId",
		Credit:        "Credit",
		RequestedAt:   "RequestTimestamp",
		Result:        "Result",
	}
}

func (c GatewayColumns) Required() []string {
	return []string{c.TransactionID, c.Credit, c.RequestedAt, c.Result}
}
