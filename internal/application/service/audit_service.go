package service

import (
	"context"
	"log"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/google/uuid"
)

// AuditService writes and reads the append-only audit log
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// AuditEntry describes a mutation to be recorded
type AuditEntry struct {
	ActorID    uuid.UUID
	ActorEmail string
	Action     enum.AuditAction
	TargetType string
	TargetID   string
	ProNumber  string
	Summary    string
}

// Record appends an audit entry. The log is a best-effort side channel:
// a failed write is logged and swallowed so it can never fail the primary
// operation.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	auditLog := &entity.AuditLog{
		ActorID:    entry.ActorID,
		ActorEmail: entry.ActorEmail,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		ProNumber:  entry.ProNumber,
		Summary:    entry.Summary,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		log.Printf("Warning: failed to write audit entry (%s %s %s): %v",
			entry.Action, entry.TargetType, entry.TargetID, err)
	}
}

// ListAuditLogsInput represents the input for listing audit logs
type ListAuditLogsInput struct {
	Pagination *pagination.PaginationParams
	Action     *enum.AuditAction
	TargetType string
	TargetID   string
	ProNumber  string
}

// ListAuditLogs returns audit entries with pagination and filtering
func (s *AuditService) ListAuditLogs(ctx context.Context, input *ListAuditLogsInput) (*pagination.PaginatedResult[entity.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, &repository.AuditFilterParams{
		Pagination: input.Pagination,
		Action:     input.Action,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		ProNumber:  input.ProNumber,
	})
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, paging), nil
}
