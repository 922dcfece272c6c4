package repository

import (
	"context"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
)

// AuditLogRepository defines the interface for the append-only audit log
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
}

// AuditFilterParams contains filtering parameters for audit log queries
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	Action     *enum.AuditAction
	TargetType string
	TargetID   string
	ProNumber  string
}
