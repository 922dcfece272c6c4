package service

import (
	"context"
	"fmt"
	"time"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/freightbooks/freightbooks-api/pkg/apperror"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/google/uuid"
)

// ShipmentService handles shipment-related operations
type ShipmentService struct {
	shipmentRepo repository.ShipmentRepository
	receiptRepo  repository.ReceiptDocumentRepository
	audit        *AuditService
}

// NewShipmentService creates a new shipment service
func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	receiptRepo repository.ReceiptDocumentRepository,
	audit *AuditService,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		receiptRepo:  receiptRepo,
		audit:        audit,
	}
}

// CreateShipmentInput represents the input for creating a shipment
type CreateShipmentInput struct {
	Actor        Actor
	ProNumber    string
	Consignee    string
	Origin       string
	Destination  string
	Status       enum.ShipmentStatus
	DeliveryDate *time.Time
	Note         *string
}

// CreateShipment registers a new shipment under a unique PRO number
func (s *ShipmentService) CreateShipment(ctx context.Context, input *CreateShipmentInput) (*entity.Shipment, error) {
	existing, err := s.shipmentRepo.GetByProNumber(ctx, input.ProNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("PRO number already registered")
	}

	shipment := &entity.Shipment{
		ProNumber:    input.ProNumber,
		Consignee:    input.Consignee,
		Origin:       input.Origin,
		Destination:  input.Destination,
		Status:       input.Status,
		DeliveryDate: input.DeliveryDate,
		Note:         input.Note,
		CreatedByID:  input.Actor.ID,
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    input.Actor.ID,
		ActorEmail: input.Actor.Email,
		Action:     enum.AuditActionCreate,
		TargetType: "shipment",
		TargetID:   shipment.ID.String(),
		ProNumber:  shipment.ProNumber,
		Summary:    fmt.Sprintf("Registered shipment PRO %s for %s", shipment.ProNumber, shipment.Consignee),
	})

	return shipment, nil
}

// GetShipment retrieves a shipment by ID
func (s *ShipmentService) GetShipment(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, apperror.NewNotFoundError("Shipment")
	}
	return shipment, nil
}

// UpdateShipmentInput represents the input for updating a shipment
type UpdateShipmentInput struct {
	Actor        Actor
	ID           uuid.UUID
	Consignee    *string
	Origin       *string
	Destination  *string
	Status       *enum.ShipmentStatus
	DeliveryDate *time.Time
	Note         *string
}

// UpdateShipment updates shipment fields. The PRO number is immutable:
// receipts reference it and renumbering would orphan them.
func (s *ShipmentService) UpdateShipment(ctx context.Context, input *UpdateShipmentInput) (*entity.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, apperror.NewNotFoundError("Shipment")
	}

	if input.Consignee != nil {
		shipment.Consignee = *input.Consignee
	}
	if input.Origin != nil {
		shipment.Origin = *input.Origin
	}
	if input.Destination != nil {
		shipment.Destination = *input.Destination
	}
	if input.Status != nil {
		shipment.Status = *input.Status
	}
	if input.DeliveryDate != nil {
		shipment.DeliveryDate = input.DeliveryDate
	}
	if input.Note != nil {
		shipment.Note = input.Note
	}

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    input.Actor.ID,
		ActorEmail: input.Actor.Email,
		Action:     enum.AuditActionUpdate,
		TargetType: "shipment",
		TargetID:   shipment.ID.String(),
		ProNumber:  shipment.ProNumber,
		Summary:    fmt.Sprintf("Updated shipment PRO %s (%s)", shipment.ProNumber, shipment.Status),
	})

	return shipment, nil
}

// DeleteShipment removes a shipment. Shipments with receipts on file cannot
// be removed; the receipts must be deleted first.
func (s *ShipmentService) DeleteShipment(ctx context.Context, actor Actor, id uuid.UUID) error {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shipment == nil {
		return nil
	}

	receipts, err := s.receiptRepo.ListByPro(ctx, shipment.ProNumber)
	if err != nil {
		return err
	}
	if len(receipts) > 0 {
		return apperror.NewConflictError("Shipment has receipts on file")
	}

	if err := s.shipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     enum.AuditActionDelete,
		TargetType: "shipment",
		TargetID:   shipment.ID.String(),
		ProNumber:  shipment.ProNumber,
		Summary:    fmt.Sprintf("Deleted shipment PRO %s", shipment.ProNumber),
	})

	return nil
}

// ListShipmentsInput represents the input for listing shipments
type ListShipmentsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ShipmentStatus
	SortBy     string
	SortOrder  string
}

// ListShipments returns shipments with pagination and filtering
func (s *ShipmentService) ListShipments(ctx context.Context, input *ListShipmentsInput) (*pagination.PaginatedResult[entity.Shipment], error) {
	shipments, total, err := s.shipmentRepo.List(ctx, &repository.ShipmentFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(shipments, paging), nil
}
