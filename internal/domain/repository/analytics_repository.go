package repository

import (
	"context"
	"time"
)

// ReceiptTypeTotalsResult represents receipt aggregates for one receipt type
type ReceiptTypeTotalsResult struct {
	ReceiptType    string
	ReceiptCount   int64
	GrandTotal     float64
	TotalAmountDue float64
}

// MonthlyAmountDueResult represents billed amounts for a single month
type MonthlyAmountDueResult struct {
	Month          time.Time
	ReceiptCount   int64
	TotalAmountDue float64
}

// TopProResult represents the receipts billed against one PRO number
type TopProResult struct {
	ProNumber      string
	Consignee      string
	ReceiptCount   int64
	TotalAmountDue float64
}

// AnalyticsRepository defines interface for finance aggregation queries
type AnalyticsRepository interface {
	// GetTotalsByReceiptType returns counts and amount sums per receipt type
	GetTotalsByReceiptType(ctx context.Context) ([]ReceiptTypeTotalsResult, error)

	// GetMonthlyAmountDue returns billed amounts for the last N months
	GetMonthlyAmountDue(ctx context.Context, months int) ([]MonthlyAmountDueResult, error)

	// GetTopPros returns the PRO numbers with the highest billed amounts
	GetTopPros(ctx context.Context, limit int) ([]TopProResult, error)

	// GetTotalAmountDue returns the total amount due across all receipts
	GetTotalAmountDue(ctx context.Context) (float64, error)

	// GetShipmentsWithoutReceipts counts delivered shipments not yet billed
	GetShipmentsWithoutReceipts(ctx context.Context) (int64, error)
}
