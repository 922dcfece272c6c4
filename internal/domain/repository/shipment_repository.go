package repository

import (
	"context"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/google/uuid"
)

// ShipmentRepository defines the interface for shipment data operations
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)
	GetByProNumber(ctx context.Context, proNumber string) (*entity.Shipment, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ShipmentFilterParams) ([]entity.Shipment, int64, error)
}

// ShipmentFilterParams contains filtering parameters for shipment queries
type ShipmentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ShipmentStatus
	SortBy     string
	SortOrder  string
}
