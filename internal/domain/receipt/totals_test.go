package receipt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeTotals(t *testing.T) {
	freight := NewGroup("Freight Charges")
	freight.Rows = append(freight.Rows,
		NewRow("Trucking", d("1000")),
		NewRow("Handling", d("250")),
	)

	fees := NewGroup("Fees")
	fees.Rows = append(fees.Rows, NewRow("Documentation", d("250")))

	totals := ComputeTotals([]Group{freight, fees})

	assert.True(t, totals.PerGroup[freight.ID].Equal(d("1250")))
	assert.True(t, totals.PerGroup[fees.ID].Equal(d("250")))
	assert.True(t, totals.GrandTotal.Equal(d("1500")))
}

func TestComputeTotalsIncludesChildren(t *testing.T) {
	parent := NewWithholdingRow("Hauling", d("200"), WithholdingClassHauling)
	parent.Children = []ChildRow{NewChildRow("Fuel surcharge", d("100"))}

	g := NewGroup("Charges")
	g.Rows = append(g.Rows, parent)

	totals := ComputeTotals([]Group{g})
	assert.True(t, totals.GrandTotal.Equal(d("300")))
}

func TestComputeTotalsEmptyGroup(t *testing.T) {
	g := NewGroup("Empty")
	totals := ComputeTotals([]Group{g})

	assert.True(t, totals.PerGroup[g.ID].IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	a := NewGroup("A")
	a.Rows = append(a.Rows, NewRow("x", d("10.10")))
	b := NewGroup("B")
	b.Rows = append(b.Rows, NewRow("y", d("20.20")))

	forward := ComputeTotals([]Group{a, b})
	backward := ComputeTotals([]Group{b, a})

	assert.True(t, forward.GrandTotal.Equal(backward.GrandTotal))
}

func TestComputeTotalsIdempotent(t *testing.T) {
	g := NewGroup("G")
	g.Rows = append(g.Rows, NewRow("x", d("42.42")))
	groups := []Group{g}

	first := ComputeTotals(groups)
	second := ComputeTotals(groups)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.PerGroup[g.ID].Equal(second.PerGroup[g.ID]))
}
