package matcher

import (
	"sort"

	"payment-recon/internal/domain"
)

// JoinOutput is the product of a full outer join
type JoinOutput struct {
	Rows []domain.JoinedRow
	// DuplicateReferences lists, sorted, every non-empty key seen more than once on
	// either side. Such keys produce a cross-product of joined rows.
	DuplicateReferences []string
}

// Join performs a full outer equality join of switch records and eligible gateway records
// on Reference == TransactionID. Empty keys never match.
//
// Rows come out in a fixed order: switch records in input order, each followed by its
// gateway matches in input order, then unmatched gateway records in input order.
func Join(switchRecords []domain.SwitchRecord, gatewayRecords []domain.GatewayRecord) JoinOutput {
	// Phase 1: index gateway records by key for O(1) lookup
	gatewayIndex := buildGatewayIndex(gatewayRecords)
	matchedGateway := make([]bool, len(gatewayRecords))
	switchKeyCount := make(map[string]int, len(switchRecords))

	rows := make([]domain.JoinedRow, 0, len(switchRecords)+len(gatewayRecords))

	// Phase 2: probe with every switch record
	for i := range switchRecords {
		sw := &switchRecords[i]
		if sw.Reference != "" {
			switchKeyCount[sw.Reference]++
		}

		positions := gatewayIndex[sw.Reference]
		if sw.Reference == "" || len(positions) == 0 {
			rows = append(rows, domain.JoinedRow{Switch: sw, Membership: domain.SwitchOnly})
			continue
		}

		for _, pos := range positions {
			matchedGateway[pos] = true
			rows = append(rows, domain.JoinedRow{
				Switch:     sw,
				Gateway:    &gatewayRecords[pos],
				Membership: domain.Both,
			})
		}
	}

	// Phase 3: whatever gateway record was never probed is gateway-only
	for i := range gatewayRecords {
		if !matchedGateway[i] {
			rows = append(rows, domain.JoinedRow{Gateway: &gatewayRecords[i], Membership: domain.GatewayOnly})
		}
	}

	return JoinOutput{
		Rows:                rows,
		DuplicateReferences: duplicateKeys(switchKeyCount, gatewayIndex),
	}
}

// buildGatewayIndex maps each non-empty transaction id to the positions holding it
func buildGatewayIndex(records []domain.GatewayRecord) map[string][]int {
	index := make(map[string][]int, len(records))
	for i, rec := range records {
		if rec.TransactionID == "" {
			continue
		}
		index[rec.TransactionID] = append(index[rec.TransactionID], i)
	}
	return index
}

func duplicateKeys(switchKeyCount map[string]int, gatewayIndex map[string][]int) []string {
	seen := make(map[string]struct{})
	for key, n := range switchKeyCount {
		if n > 1 {
			seen[key] = struct{}{}
		}
	}
	for key, positions := range gatewayIndex {
		if len(positions) > 1 {
			seen[key] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
