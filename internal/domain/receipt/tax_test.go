package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A 1,500 invoice with a 500 brokerage charge: VAT 12% adds 180, the
// brokerage row withholds 20% of its own 500.
func TestComputeTaxStandardInvoice(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows,
		NewRow("Trucking", d("1000")),
		NewWithholdingRow("Brokerage fee", d("500"), WithholdingClassBrokerage),
	)
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: true})

	assert.True(t, comp.GrandTotal.Equal(d("1500")))
	assert.True(t, comp.VATPercent.Equal(d("12")))
	assert.True(t, comp.VatableSales.Equal(d("1500")))
	assert.True(t, comp.VATValue.Equal(d("180")))
	assert.True(t, comp.VATExemptSales.IsZero())
	assert.True(t, comp.TotalSalesVATInc.Equal(d("1680")))
	assert.True(t, comp.WithholdingTax.Equal(d("100")))
	assert.True(t, comp.TotalAmountDue.Equal(d("1580")))
}

func TestComputeTaxVATExempt(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows, NewRow("Trucking", d("1400")))
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{VATExempt: true})

	assert.True(t, comp.VatableSales.IsZero())
	assert.True(t, comp.VATValue.IsZero())
	assert.True(t, comp.VATExemptSales.Equal(d("1400")))
	assert.True(t, comp.TotalSalesVATInc.Equal(d("1400")))
	assert.True(t, comp.TotalAmountDue.Equal(d("1400")))
}

// The withholding base for a parent row includes its children: a 200
// hauling row with a 100 child withholds 2% of 300.
func TestComputeTaxWithholdingBaseIncludesChildren(t *testing.T) {
	parent := NewWithholdingRow("Hauling", d("200"), WithholdingClassHauling)
	parent.Children = []ChildRow{NewChildRow("Fuel surcharge", d("100"))}

	g := NewGroup("Charges")
	g.Rows = append(g.Rows, parent)
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: true})

	assert.True(t, comp.WithholdingTax.Equal(d("6")))
}

func TestComputeTaxWithholdingDisabled(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows, NewWithholdingRow("Brokerage fee", d("500"), WithholdingClassBrokerage))
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: false})

	assert.True(t, comp.WithholdingTax.IsZero())
	assert.True(t, comp.TotalAmountDue.Equal(comp.TotalSalesVATInc))
}

func TestComputeTaxExplicitPercentOverridesClass(t *testing.T) {
	pct := d("5")
	row := NewWithholdingRow("Brokerage fee", d("1000"), WithholdingClassBrokerage)
	row.WithholdingPercent = &pct

	g := NewGroup("Charges")
	g.Rows = append(g.Rows, row)
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: true})

	assert.True(t, comp.WithholdingTax.Equal(d("50")))
}

func TestComputeTaxCustomVATPercent(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows, NewRow("Trucking", d("1000")))
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{VATPercent: d("10")})

	assert.True(t, comp.VATValue.Equal(d("100")))
	assert.True(t, comp.TotalSalesVATInc.Equal(d("1100")))
}

// totalAmountDue = totalSalesVATInc - withholdingTax must hold exactly, with
// no rounding drift, for awkward fractional amounts.
func TestComputeTaxIdentityHoldsExactly(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows,
		NewRow("Trucking", d("333.33")),
		NewWithholdingRow("Brokerage fee", d("66.67"), WithholdingClassBrokerage),
	)
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: true})

	assert.True(t, comp.TotalAmountDue.Equal(comp.TotalSalesVATInc.Sub(comp.WithholdingTax)))
	assert.True(t, comp.AmountNetOfVAT.Add(comp.AddVAT).Equal(comp.TotalSalesVATInc))
}

func TestWithholdingClassDefaults(t *testing.T) {
	assert.True(t, WithholdingClassBrokerage.DefaultPercent().Equal(d("20")))
	assert.True(t, WithholdingClassHauling.DefaultPercent().Equal(d("2")))
	assert.True(t, WithholdingClassDocumentation.DefaultPercent().Equal(d("2")))
	assert.True(t, WithholdingClassNone.DefaultPercent().IsZero())
}

// Relabeling a row must not change its withholding behavior; the class is
// data, not derived from the label.
func TestWithholdingSurvivesRelabel(t *testing.T) {
	row := NewWithholdingRow("Brokerage fee", d("500"), WithholdingClassBrokerage)
	row.Label = "Misc charge"

	g := NewGroup("Charges")
	g.Rows = append(g.Rows, row)
	groups := []Group{g}
	totals := ComputeTotals(groups)

	comp := ComputeTax(groups, totals, TaxOptions{WithholdingEnabled: true})
	assert.True(t, comp.WithholdingTax.Equal(d("100")))
}

func TestComputeStatement(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows, NewRow("Trucking", d("1400")))
	totals := ComputeTotals([]Group{g})

	comp := ComputeStatement(totals)
	assert.True(t, comp.GrandTotal.Equal(d("1400")))
}
