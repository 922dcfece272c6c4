package repository

import (
	"context"
	"errors"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	domainRepo "github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptDocumentRepository struct {
	db *gorm.DB
}

// NewReceiptDocumentRepository creates a new receipt document repository
func NewReceiptDocumentRepository(db *gorm.DB) domainRepo.ReceiptDocumentRepository {
	return &receiptDocumentRepository{db: db}
}

func (r *receiptDocumentRepository) Create(ctx context.Context, doc *entity.ReceiptDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *receiptDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptDocument, error) {
	var doc entity.ReceiptDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *receiptDocumentRepository) UpdateVersioned(ctx context.Context, doc *entity.ReceiptDocument, expectedVersion int) error {
	result := r.db.WithContext(ctx).Model(&entity.ReceiptDocument{}).
		Where("id = ? AND version = ?", doc.ID, expectedVersion).
		Updates(map[string]interface{}{
			"groups":           doc.Groups,
			"computed":         doc.Computed,
			"grand_total":      doc.GrandTotal,
			"total_amount_due": doc.TotalAmountDue,
			"version":          expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrVersionConflict
	}
	doc.Version = expectedVersion + 1
	return nil
}

func (r *receiptDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ReceiptDocument{}, "id = ?", id).Error
}

func (r *receiptDocumentRepository) ListByPro(ctx context.Context, proNumber string) ([]entity.ReceiptDocument, error) {
	var docs []entity.ReceiptDocument
	err := r.db.WithContext(ctx).
		Where("pro_number = ?", proNumber).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *receiptDocumentRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.ReceiptDocument, int64, error) {
	var docs []entity.ReceiptDocument
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ReceiptDocument{})

	if params.ProNumber != "" {
		query = query.Where("pro_number = ?", params.ProNumber)
	}

	if params.ReceiptType != nil {
		query = query.Where("receipt_type = ?", *params.ReceiptType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "pro_number", "receipt_type", "grand_total", "total_amount_due", "updated_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&docs).Error

	return docs, total, err
}
