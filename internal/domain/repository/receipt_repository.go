package repository

import (
	"context"
	"errors"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/google/uuid"
)

// ErrVersionConflict is returned by UpdateVersioned when the stored document
// version no longer matches the version the caller read.
var ErrVersionConflict = errors.New("receipt document version conflict")

// ReceiptDocumentRepository defines the interface for receipt document data operations
type ReceiptDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ReceiptDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptDocument, error)
	// UpdateVersioned replaces groups, computed snapshot and totals in full,
	// guarded by an optimistic version check. A stale version yields
	// ErrVersionConflict.
	UpdateVersioned(ctx context.Context, doc *entity.ReceiptDocument, expectedVersion int) error
	// Delete is idempotent; deleting an id that does not exist is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPro(ctx context.Context, proNumber string) ([]entity.ReceiptDocument, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.ReceiptDocument, int64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination  *pagination.PaginationParams
	ProNumber   string
	ReceiptType *enum.ReceiptType
	SortBy      string
	SortOrder   string
}
