package receipt

import "github.com/shopspring/decimal"

// Totals holds the aggregated amounts for a group tree.
type Totals struct {
	PerGroup   map[string]decimal.Decimal `json:"per_group"`
	GrandTotal decimal.Decimal            `json:"grand_total"`
}

// ComputeTotals sums every row value (plus child values) into per-group
// totals and a grand total. It is pure and idempotent: the same tree always
// yields the same result, and group order does not affect the numbers.
func ComputeTotals(groups []Group) Totals {
	totals := Totals{
		PerGroup:   make(map[string]decimal.Decimal, len(groups)),
		GrandTotal: decimal.Zero,
	}

	for _, g := range groups {
		groupTotal := decimal.Zero
		for _, r := range g.Rows {
			groupTotal = groupTotal.Add(r.Total())
		}
		totals.PerGroup[g.ID] = groupTotal
		totals.GrandTotal = totals.GrandTotal.Add(groupTotal)
	}

	return totals
}
