package scoring

import "github.com/oakhavenpractice/intake-backend/internal/catalog"

// InventoryResult is the scored result for a total-score inventory
// (BECKS, BURNS).
type InventoryResult struct {
	Total    float64 `json:"total"`
	Severity string  `json:"severity"`
}

// ScoreInventory sums the coerced answers over the item list and looks the
// total up in the severity ranges. Interval lookup, distinct from the
// nearest-boundary classifier used for SMI and YSQ.
func ScoreInventory(answers map[string]any, items []catalog.Item, ranges []catalog.SeverityRange) InventoryResult {
	var total float64
	for _, item := range items {
		total += NumericAnswer(answers[item.ID])
	}
	return InventoryResult{Total: total, Severity: severityFor(total, ranges)}
}

func severityFor(total float64, ranges []catalog.SeverityRange) string {
	for _, r := range ranges {
		if total >= r.Min && total <= r.Max {
			return r.Label
		}
	}
	return LabelUnknown
}
