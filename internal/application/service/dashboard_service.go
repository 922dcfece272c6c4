package service

import (
	"context"

	"github.com/freightbooks/freightbooks-api/internal/domain/repository"
)

// DashboardService provides finance dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// DashboardStats represents finance dashboard statistics
type DashboardStats struct {
	TotalAmountDue     float64              `json:"total_amount_due"`
	UnbilledShipments  int64                `json:"unbilled_shipments"`
	TotalsByType       []ReceiptTypePoint   `json:"totals_by_type"`
	MonthlyAmountDue   []MonthlyBilledPoint `json:"monthly_amount_due"`
	TopPros            []TopProPoint        `json:"top_pros"`
}

// ReceiptTypePoint represents aggregates for one receipt type
type ReceiptTypePoint struct {
	ReceiptType    string  `json:"receipt_type"`
	ReceiptCount   int64   `json:"receipt_count"`
	GrandTotal     float64 `json:"grand_total"`
	TotalAmountDue float64 `json:"total_amount_due"`
}

// MonthlyBilledPoint represents billed amounts for one month
type MonthlyBilledPoint struct {
	Month          string  `json:"month"`
	ReceiptCount   int64   `json:"receipt_count"`
	TotalAmountDue float64 `json:"total_amount_due"`
}

// TopProPoint represents the highest-billed PRO numbers
type TopProPoint struct {
	ProNumber      string  `json:"pro_number"`
	Consignee      string  `json:"consignee"`
	ReceiptCount   int64   `json:"receipt_count"`
	TotalAmountDue float64 `json:"total_amount_due"`
}

// GetDashboardStats returns finance dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	total, err := s.analyticsRepo.GetTotalAmountDue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalAmountDue = total

	unbilled, err := s.analyticsRepo.GetShipmentsWithoutReceipts(ctx)
	if err != nil {
		return nil, err
	}
	stats.UnbilledShipments = unbilled

	byType, err := s.analyticsRepo.GetTotalsByReceiptType(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalsByType = make([]ReceiptTypePoint, 0, len(byType))
	for _, t := range byType {
		stats.TotalsByType = append(stats.TotalsByType, ReceiptTypePoint{
			ReceiptType:    t.ReceiptType,
			ReceiptCount:   t.ReceiptCount,
			GrandTotal:     t.GrandTotal,
			TotalAmountDue: t.TotalAmountDue,
		})
	}

	monthly, err := s.analyticsRepo.GetMonthlyAmountDue(ctx, 12)
	if err != nil {
		return nil, err
	}
	stats.MonthlyAmountDue = make([]MonthlyBilledPoint, 0, len(monthly))
	for _, m := range monthly {
		stats.MonthlyAmountDue = append(stats.MonthlyAmountDue, MonthlyBilledPoint{
			Month:          m.Month.Format("2006-01"),
			ReceiptCount:   m.ReceiptCount,
			TotalAmountDue: m.TotalAmountDue,
		})
	}

	topPros, err := s.analyticsRepo.GetTopPros(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopPros = make([]TopProPoint, 0, len(topPros))
	for _, p := range topPros {
		stats.TopPros = append(stats.TopPros, TopProPoint{
			ProNumber:      p.ProNumber,
			Consignee:      p.Consignee,
			ReceiptCount:   p.ReceiptCount,
			TotalAmountDue: p.TotalAmountDue,
		})
	}

	return stats, nil
}
