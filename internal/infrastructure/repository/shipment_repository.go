package repository

import (
	"context"
	"errors"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	domainRepo "github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *gorm.DB) domainRepo.ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	var shipment entity.Shipment
	err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shipment, err
}

func (r *shipmentRepository) GetByProNumber(ctx context.Context, proNumber string) (*entity.Shipment, error) {
	var shipment entity.Shipment
	err := r.db.WithContext(ctx).First(&shipment, "pro_number = ?", proNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shipment, err
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

func (r *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Shipment{}, "id = ?", id).Error
}

func (r *shipmentRepository) List(ctx context.Context, params *domainRepo.ShipmentFilterParams) ([]entity.Shipment, int64, error) {
	var shipments []entity.Shipment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Shipment{})

	if params.Search != "" {
		query = query.Where("pro_number ILIKE ? OR consignee ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "pro_number", "consignee", "status", "delivery_date", "updated_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&shipments).Error

	return shipments, total, err
}
