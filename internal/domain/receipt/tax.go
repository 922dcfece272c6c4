package receipt

import "github.com/shopspring/decimal"

// DefaultVATPercent is the VAT rate applied when the caller does not
// specify one.
var DefaultVATPercent = decimal.NewFromInt(12)

var oneHundred = decimal.NewFromInt(100)

// TaxOptions are the user-controlled toggles for a service-invoice
// computation.
type TaxOptions struct {
	VATExempt          bool            `json:"vat_exempt"`
	VATPercent         decimal.Decimal `json:"vat_percent"`
	WithholdingEnabled bool            `json:"withholding_enabled"`
}

// TaxComputation is the derived snapshot persisted with a service invoice.
// It is recomputed in full on every edit; there is no incremental state.
type TaxComputation struct {
	GrandTotal         decimal.Decimal `json:"grand_total"`
	VATExempt          bool            `json:"vat_exempt"`
	VATPercent         decimal.Decimal `json:"vat_percent"`
	WithholdingEnabled bool            `json:"withholding_enabled"`
	VatableSales       decimal.Decimal `json:"vatable_sales"`
	VATValue           decimal.Decimal `json:"vat_value"`
	VATExemptSales     decimal.Decimal `json:"vat_exempt_sales"`
	TotalSalesVATInc   decimal.Decimal `json:"total_sales_vat_inc"`
	LessVAT            decimal.Decimal `json:"less_vat"`
	AmountNetOfVAT     decimal.Decimal `json:"amount_net_of_vat"`
	AddVAT             decimal.Decimal `json:"add_vat"`
	WithholdingTax     decimal.Decimal `json:"withholding_tax"`
	TotalAmountDue     decimal.Decimal `json:"total_amount_due"`
}

// StatementComputation is the derived snapshot persisted with a statement of
// accounts, which carries no VAT or withholding figures.
type StatementComputation struct {
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// WithholdingBase returns the amount a withholding percentage applies to:
// the parent row's value plus all of its children's values.
func WithholdingBase(r Row) decimal.Decimal {
	return r.Total()
}

// ComputeTax derives the full service-invoice tax figures from the group
// tree and its fresh totals. All arithmetic is exact decimal arithmetic, so
// the identity totalAmountDue = totalSalesVATInc - withholdingTax holds
// without rounding drift; rounding happens only at display time.
func ComputeTax(groups []Group, totals Totals, opts TaxOptions) TaxComputation {
	vatPercent := opts.VATPercent
	if vatPercent.IsZero() && !opts.VATExempt {
		vatPercent = DefaultVATPercent
	}

	comp := TaxComputation{
		GrandTotal:         totals.GrandTotal,
		VATExempt:          opts.VATExempt,
		VATPercent:         vatPercent,
		WithholdingEnabled: opts.WithholdingEnabled,
	}

	if opts.VATExempt {
		comp.VatableSales = decimal.Zero
		comp.VATValue = decimal.Zero
		comp.VATExemptSales = totals.GrandTotal
		comp.TotalSalesVATInc = totals.GrandTotal
	} else {
		comp.VatableSales = totals.GrandTotal
		comp.VATValue = totals.GrandTotal.Mul(vatPercent).Div(oneHundred)
		comp.VATExemptSales = decimal.Zero
		comp.TotalSalesVATInc = totals.GrandTotal.Add(comp.VATValue)
	}

	comp.LessVAT = comp.VATValue
	comp.AmountNetOfVAT = comp.TotalSalesVATInc.Sub(comp.VATValue)
	comp.AddVAT = comp.VATValue

	comp.WithholdingTax = decimal.Zero
	if opts.WithholdingEnabled {
		for _, g := range groups {
			for _, r := range g.Rows {
				if !r.WithholdingParent {
					continue
				}
				comp.WithholdingTax = comp.WithholdingTax.Add(
					WithholdingBase(r).Mul(r.Percent()).Div(oneHundred))
			}
		}
	}

	comp.TotalAmountDue = comp.TotalSalesVATInc.Sub(comp.WithholdingTax)
	return comp
}

// ComputeStatement derives the statement-of-accounts snapshot, which is just
// the grand total.
func ComputeStatement(totals Totals) StatementComputation {
	return StatementComputation{GrandTotal: totals.GrandTotal}
}
