package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/receipt"
	"github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/freightbooks/freightbooks-api/pkg/apperror"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReceiptService implements the persistence contract for receipt documents.
// Snapshots are computed from the submitted group tree with the domain
// engine before every save, so a malformed or non-positive total can never
// reach storage regardless of what the client claims to have computed.
type ReceiptService struct {
	receiptRepo  repository.ReceiptDocumentRepository
	shipmentRepo repository.ShipmentRepository
	audit        *AuditService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptDocumentRepository,
	shipmentRepo repository.ShipmentRepository,
	audit *AuditService,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
		audit:        audit,
	}
}

// Actor identifies the user performing an operation, for audit entries.
type Actor struct {
	ID    uuid.UUID
	Email string
}

// CreateReceiptInput represents the input for creating a receipt
type CreateReceiptInput struct {
	Actor       Actor
	ProNumber   string
	ReceiptType enum.ReceiptType
	Groups      []receipt.Group
	Tax         receipt.TaxOptions
}

// snapshot holds the serialized tree and computed figures for one save.
type snapshot struct {
	groups         datatypes.JSON
	computed       datatypes.JSON
	grandTotal     decimal.Decimal
	totalAmountDue decimal.Decimal
}

func buildSnapshot(receiptType enum.ReceiptType, groups []receipt.Group, tax receipt.TaxOptions) (*snapshot, error) {
	totals := receipt.ComputeTotals(groups)

	if totals.GrandTotal.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewUnprocessableError("Receipt grand total must be greater than zero")
	}

	var computed interface{}
	totalAmountDue := totals.GrandTotal
	if receiptType == enum.ReceiptTypeServiceInvoice {
		comp := receipt.ComputeTax(groups, totals, tax)
		totalAmountDue = comp.TotalAmountDue
		computed = comp
	} else {
		computed = receipt.ComputeStatement(totals)
	}

	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return nil, err
	}
	computedJSON, err := json.Marshal(computed)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		groups:         groupsJSON,
		computed:       computedJSON,
		grandTotal:     totals.GrandTotal,
		totalAmountDue: totalAmountDue,
	}, nil
}

// CreateReceipt validates and persists a new receipt document for a PRO
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.ReceiptDocument, error) {
	if !input.ReceiptType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown receipt type")
	}

	shipment, err := s.shipmentRepo.GetByProNumber(ctx, input.ProNumber)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, apperror.NewNotFoundError("Shipment")
	}

	snap, err := buildSnapshot(input.ReceiptType, input.Groups, input.Tax)
	if err != nil {
		return nil, err
	}

	doc := &entity.ReceiptDocument{
		ProNumber:      input.ProNumber,
		ReceiptType:    input.ReceiptType,
		Groups:         snap.groups,
		Computed:       snap.computed,
		GrandTotal:     snap.grandTotal,
		TotalAmountDue: snap.totalAmountDue,
		Version:        1,
		CreatedByID:    input.Actor.ID,
	}

	if err := s.receiptRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    input.Actor.ID,
		ActorEmail: input.Actor.Email,
		Action:     enum.AuditActionCreate,
		TargetType: "receipt",
		TargetID:   doc.ID.String(),
		ProNumber:  doc.ProNumber,
		Summary: fmt.Sprintf("Created %s for PRO %s amounting to %s",
			doc.ReceiptType, doc.ProNumber, receipt.FormatAmount(doc.TotalAmountDue)),
	})

	return doc, nil
}

// UpdateReceiptInput represents the input for replacing a receipt's contents
type UpdateReceiptInput struct {
	Actor  Actor
	ID     uuid.UUID
	Groups []receipt.Group
	Tax    receipt.TaxOptions
	// Version is the document version the client last read. Zero means the
	// client does not track versions and takes the current one.
	Version int
}

// UpdateReceipt replaces the group tree and computed snapshot in full. The
// receipt type is fixed at creation and cannot be changed here.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, input *UpdateReceiptInput) (*entity.ReceiptDocument, error) {
	doc, err := s.receiptRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	snap, err := buildSnapshot(doc.ReceiptType, input.Groups, input.Tax)
	if err != nil {
		return nil, err
	}

	expectedVersion := input.Version
	if expectedVersion == 0 {
		expectedVersion = doc.Version
	}

	doc.Groups = snap.groups
	doc.Computed = snap.computed
	doc.GrandTotal = snap.grandTotal
	doc.TotalAmountDue = snap.totalAmountDue

	if err := s.receiptRepo.UpdateVersioned(ctx, doc, expectedVersion); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperror.NewConflictError("Receipt was modified by someone else; reload and try again")
		}
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    input.Actor.ID,
		ActorEmail: input.Actor.Email,
		Action:     enum.AuditActionUpdate,
		TargetType: "receipt",
		TargetID:   doc.ID.String(),
		ProNumber:  doc.ProNumber,
		Summary: fmt.Sprintf("Updated %s for PRO %s, new amount due %s",
			doc.ReceiptType, doc.ProNumber, receipt.FormatAmount(doc.TotalAmountDue)),
	})

	return doc, nil
}

// GetReceipt retrieves a receipt document by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.ReceiptDocument, error) {
	doc, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return doc, nil
}

// ListReceiptsInput represents the input for listing receipts
type ListReceiptsInput struct {
	Pagination  *pagination.PaginationParams
	ProNumber   string
	ReceiptType *enum.ReceiptType
	SortBy      string
	SortOrder   string
}

// ListReceipts returns receipt documents with pagination and filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, input *ListReceiptsInput) (*pagination.PaginatedResult[entity.ReceiptDocument], error) {
	docs, total, err := s.receiptRepo.List(ctx, &repository.ReceiptFilterParams{
		Pagination:  input.Pagination,
		ProNumber:   input.ProNumber,
		ReceiptType: input.ReceiptType,
		SortBy:      input.SortBy,
		SortOrder:   input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, paging), nil
}

// ListReceiptsByPro returns every receipt for a PRO number, newest first
func (s *ReceiptService) ListReceiptsByPro(ctx context.Context, proNumber string) ([]entity.ReceiptDocument, error) {
	return s.receiptRepo.ListByPro(ctx, proNumber)
}

// DeleteReceipt removes a receipt document. Deleting an id that no longer
// exists succeeds; callers must not depend on a not-found signal here.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, actor Actor, id uuid.UUID) error {
	doc, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     enum.AuditActionDelete,
		TargetType: "receipt",
		TargetID:   doc.ID.String(),
		ProNumber:  doc.ProNumber,
		Summary: fmt.Sprintf("Deleted %s for PRO %s amounting to %s",
			doc.ReceiptType, doc.ProNumber, receipt.FormatAmount(doc.TotalAmountDue)),
	})

	return nil
}
