package enum

// ReceiptType discriminates the two receipt document kinds. It is fixed at
// creation and never changes afterwards.
type ReceiptType string

const (
	ReceiptTypeStatementOfAccounts ReceiptType = "statement_of_accounts"
	ReceiptTypeServiceInvoice      ReceiptType = "service_invoice"
)

// Valid reports whether the value is a known receipt type.
func (t ReceiptType) Valid() bool {
	switch t {
	case ReceiptTypeStatementOfAccounts, ReceiptTypeServiceInvoice:
		return true
	}
	return false
}

func (t ReceiptType) String() string {
	return string(t)
}
