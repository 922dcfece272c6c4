package repository

import (
	"context"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	domainRepo "github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) List(ctx context.Context, params *domainRepo.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{})

	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}

	if params.TargetType != "" {
		query = query.Where("target_type = ?", params.TargetType)
	}

	if params.TargetID != "" {
		query = query.Where("target_id = ?", params.TargetID)
	}

	if params.ProNumber != "" {
		query = query.Where("pro_number = ?", params.ProNumber)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
