package entity

import (
	"time"

	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a mutation. Entries are written
// best-effort alongside receipt and shipment changes and are never updated
// or deleted.
type AuditLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ActorID    uuid.UUID        `gorm:"type:uuid;index" json:"actor_id"`
	ActorEmail string           `gorm:"size:255" json:"actor_email"`
	Action     enum.AuditAction `gorm:"size:30;not null;index" json:"action"`
	TargetType string           `gorm:"size:50;not null;index" json:"target_type"`
	TargetID   string           `gorm:"size:100;index" json:"target_id"`
	ProNumber  string           `gorm:"size:50;index" json:"pro_number"`
	Summary    string           `gorm:"type:text" json:"summary"`
	CreatedAt  time.Time        `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
