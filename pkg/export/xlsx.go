// Package export renders receipt documents into spreadsheets for printing
// and emailing. Rendering is one-way: the workbook is built from the stored
// snapshot and is never read back.
package export

import (
	"fmt"
	"io"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/receipt"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// ReceiptWorkbook builds an xlsx workbook from a receipt document's stored
// group tree and computed snapshot.
func ReceiptWorkbook(doc *entity.ReceiptDocument) (*excelize.File, error) {
	groups, err := doc.DecodeGroups()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	title := "STATEMENT OF ACCOUNTS"
	if doc.ReceiptType == enum.ReceiptTypeServiceInvoice {
		title = "SERVICE INVOICE"
	}

	f.SetCellValue(sheet, "A1", title)
	f.SetCellValue(sheet, "A2", "PRO No.")
	f.SetCellValue(sheet, "B2", doc.ProNumber)
	f.SetCellValue(sheet, "A3", "Date")
	f.SetCellValue(sheet, "B3", doc.CreatedAt.Format("2006-01-02"))

	rowNo := 5
	for _, g := range groups {
		f.SetCellValue(sheet, cell("A", rowNo), g.Title)
		rowNo++

		groupTotal := receipt.ComputeTotals([]receipt.Group{g}).GrandTotal
		for _, r := range g.Rows {
			f.SetCellValue(sheet, cell("B", rowNo), r.Label)
			f.SetCellValue(sheet, cell("D", rowNo), receipt.FormatAmount(r.Value))
			rowNo++
			for _, child := range r.Children {
				f.SetCellValue(sheet, cell("C", rowNo), child.Label)
				f.SetCellValue(sheet, cell("D", rowNo), receipt.FormatAmount(child.Value))
				rowNo++
			}
		}

		f.SetCellValue(sheet, cell("B", rowNo), "Subtotal")
		f.SetCellValue(sheet, cell("D", rowNo), receipt.FormatAmount(groupTotal))
		rowNo += 2
	}

	if doc.ReceiptType == enum.ReceiptTypeServiceInvoice {
		comp, err := doc.DecodeTaxComputation()
		if err != nil {
			return nil, err
		}
		rowNo = writeTaxFooter(f, rowNo, comp)
	} else {
		comp, err := doc.DecodeStatementComputation()
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell("A", rowNo), "GRAND TOTAL")
		f.SetCellValue(sheet, cell("D", rowNo), receipt.FormatAmount(comp.GrandTotal))
	}

	return f, nil
}

// WriteReceipt renders the workbook and writes it to w.
func WriteReceipt(w io.Writer, doc *entity.ReceiptDocument) error {
	f, err := ReceiptWorkbook(doc)
	if err != nil {
		return err
	}
	return f.Write(w)
}

func writeTaxFooter(f *excelize.File, rowNo int, comp *receipt.TaxComputation) int {
	lines := []struct {
		label string
		value string
	}{
		{"VATable Sales", receipt.FormatAmount(comp.VatableSales)},
		{"VAT Exempt Sales", receipt.FormatAmount(comp.VATExemptSales)},
		{fmt.Sprintf("VAT (%s%%)", comp.VATPercent.String()), receipt.FormatAmount(comp.VATValue)},
		{"Total Sales (VAT Inclusive)", receipt.FormatAmount(comp.TotalSalesVATInc)},
		{"Less: VAT", receipt.FormatAmount(comp.LessVAT)},
		{"Amount Net of VAT", receipt.FormatAmount(comp.AmountNetOfVAT)},
		{"Add: VAT", receipt.FormatAmount(comp.AddVAT)},
		{"Less: Withholding Tax", receipt.FormatAmount(comp.WithholdingTax)},
		{"TOTAL AMOUNT DUE", receipt.FormatAmount(comp.TotalAmountDue)},
	}

	for _, line := range lines {
		f.SetCellValue(sheet, cell("A", rowNo), line.label)
		f.SetCellValue(sheet, cell("D", rowNo), line.value)
		rowNo++
	}
	return rowNo
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
