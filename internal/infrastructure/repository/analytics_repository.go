package repository

import (
	"context"
	"time"

	domainRepo "github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTotalsByReceiptType(ctx context.Context) ([]domainRepo.ReceiptTypeTotalsResult, error) {
	var results []domainRepo.ReceiptTypeTotalsResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			receipt_type,
			COUNT(id) as receipt_count,
			COALESCE(SUM(grand_total), 0) as grand_total,
			COALESCE(SUM(total_amount_due), 0) as total_amount_due
		FROM receipt_documents
		WHERE deleted_at IS NULL
		GROUP BY receipt_type
		ORDER BY receipt_type
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetMonthlyAmountDue(ctx context.Context, months int) ([]domainRepo.MonthlyAmountDueResult, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	var results []domainRepo.MonthlyAmountDueResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			date_trunc('month', created_at) as month,
			COUNT(id) as receipt_count,
			COALESCE(SUM(total_amount_due), 0) as total_amount_due
		FROM receipt_documents
		WHERE deleted_at IS NULL AND created_at >= ?
		GROUP BY date_trunc('month', created_at)
		ORDER BY month
	`, start).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopPros(ctx context.Context, limit int) ([]domainRepo.TopProResult, error) {
	var results []domainRepo.TopProResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			rd.pro_number,
			COALESCE(s.consignee, '') as consignee,
			COUNT(rd.id) as receipt_count,
			COALESCE(SUM(rd.total_amount_due), 0) as total_amount_due
		FROM receipt_documents rd
		LEFT JOIN shipments s ON s.pro_number = rd.pro_number AND s.deleted_at IS NULL
		WHERE rd.deleted_at IS NULL
		GROUP BY rd.pro_number, s.consignee
		ORDER BY total_amount_due DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalAmountDue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount_due), 0)
		FROM receipt_documents
		WHERE deleted_at IS NULL
	`).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetShipmentsWithoutReceipts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(s.id)
		FROM shipments s
		WHERE s.deleted_at IS NULL
		AND s.status = 2
		AND NOT EXISTS (
			SELECT 1 FROM receipt_documents rd
			WHERE rd.pro_number = s.pro_number AND rd.deleted_at IS NULL
		)
	`).Scan(&count).Error

	return count, err
}
