package entity

import (
	"encoding/json"
	"time"

	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/receipt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReceiptDocument is a persisted receipt for a shipment. The group/row tree
// and the computed tax snapshot are stored as JSON exactly as computed at
// save time; they are never recomputed on read. Updates replace both in
// full — there is no partial patching.
type ReceiptDocument struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ProNumber      string           `gorm:"size:50;not null;index" json:"pro_number"`
	ReceiptType    enum.ReceiptType `gorm:"size:30;not null" json:"receipt_type"`
	Groups         datatypes.JSON   `gorm:"type:jsonb;not null" json:"groups"`
	Computed       datatypes.JSON   `gorm:"type:jsonb;not null" json:"computed"`
	GrandTotal     decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"grand_total"`
	TotalAmountDue decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount_due"`
	Version        int              `gorm:"not null;default:1" json:"version"`
	CreatedByID    uuid.UUID        `gorm:"type:uuid;index" json:"created_by_id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new receipt document
func (d *ReceiptDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptDocument model
func (ReceiptDocument) TableName() string {
	return "receipt_documents"
}

// DecodeGroups unpacks the stored group/row tree.
func (d *ReceiptDocument) DecodeGroups() ([]receipt.Group, error) {
	var groups []receipt.Group
	if err := json.Unmarshal(d.Groups, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// DecodeTaxComputation unpacks the stored snapshot of a service invoice.
func (d *ReceiptDocument) DecodeTaxComputation() (*receipt.TaxComputation, error) {
	var comp receipt.TaxComputation
	if err := json.Unmarshal(d.Computed, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

// DecodeStatementComputation unpacks the stored snapshot of a statement of
// accounts.
func (d *ReceiptDocument) DecodeStatementComputation() (*receipt.StatementComputation, error) {
	var comp receipt.StatementComputation
	if err := json.Unmarshal(d.Computed, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}
