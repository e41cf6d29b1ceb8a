package classifier

import "payment-recon/internal/domain"

// Classify assigns a joined row to exactly one outcome. Rules, first match wins:
//
//	GatewayOnly, result != NOK                      -> MissingFromSwitch
//	GatewayOnly, result == NOK                      -> Reconciled
//	SwitchOnly,  status not rejected/failed/time_out -> MissingFromGateway
//	SwitchOnly,  status rejected/failed/time_out     -> Reconciled
//	Both,        result == ACK, status != success    -> StatusMismatch
//	anything else                                    -> Reconciled
func Classify(row domain.JoinedRow) domain.Outcome {
	switch row.Membership {
	case domain.GatewayOnly:
		if row.Gateway.Result != domain.ResultNOK {
			return domain.MissingFromSwitch
		}
	case domain.SwitchOnly:
		if !row.Switch.Status.IsKnownFailure() {
			return domain.MissingFromGateway
		}
	case domain.Both:
		if row.Gateway.Result == domain.ResultACK && row.Switch.Status != domain.StatusSuccess {
			return domain.StatusMismatch
		}
	}
	return domain.Reconciled
}

// Buckets partitions a joined-row sequence by outcome. Reconciled rows are only counted.
type Buckets struct {
	MissingFromSwitch  []domain.GatewayRecord
	MissingFromGateway []domain.SwitchRecord
	StatusMismatch     []domain.MatchedPair
	Reconciled         int
}

// Total is the number of rows that went into the partition
func (b Buckets) Total() int {
	return len(b.MissingFromSwitch) + len(b.MissingFromGateway) + len(b.StatusMismatch) + b.Reconciled
}

// Partition classifies every row in a single pass, preserving input order per bucket
func Partition(rows []domain.JoinedRow) Buckets {
	buckets := Buckets{
		MissingFromSwitch:  make([]domain.GatewayRecord, 0),
		MissingFromGateway: make([]domain.SwitchRecord, 0),
		StatusMismatch:     make([]domain.MatchedPair, 0),
	}

	for _, row := range rows {
		switch Classify(row) {
		case domain.MissingFromSwitch:
			buckets.MissingFromSwitch = append(buckets.MissingFromSwitch, *row.Gateway)
		case domain.MissingFromGateway:
			buckets.MissingFromGateway = append(buckets.MissingFromGateway, *row.Switch)
		case domain.StatusMismatch:
			buckets.StatusMismatch = append(buckets.StatusMismatch, domain.MatchedPair{
				Switch:  *row.Switch,
				Gateway: *row.Gateway,
			})
		default:
			buckets.Reconciled++
		}
	}

	return buckets
}
