package entity

import (
	"time"

	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shipment is a trucking job identified by its PRO number. Receipts
// reference shipments by PRO number; a shipment may have any number of
// receipts.
type Shipment struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ProNumber    string              `gorm:"size:50;uniqueIndex;not null" json:"pro_number"`
	Consignee    string              `gorm:"size:255;not null" json:"consignee"`
	Origin       string              `gorm:"size:255" json:"origin"`
	Destination  string              `gorm:"size:255" json:"destination"`
	Status       enum.ShipmentStatus `gorm:"default:0" json:"status"`
	DeliveryDate *time.Time          `gorm:"type:date" json:"delivery_date,omitempty"`
	Note         *string             `gorm:"type:text" json:"note,omitempty"`
	CreatedByID  uuid.UUID           `gorm:"type:uuid;index" json:"created_by_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shipment
func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}
