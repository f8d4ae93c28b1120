package model

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchasePending    PurchaseStatus = "PENDING"
	PurchaseProcessing PurchaseStatus = "PROCESSING"
	PurchaseCompleted  PurchaseStatus = "COMPLETED"
	PurchaseCancelled  PurchaseStatus = "CANCELLED"
)

// Valid reports whether s is one of the known purchase statuses.
func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchasePending, PurchaseProcessing, PurchaseCompleted, PurchaseCancelled:
		return true
	}
	return false
}

// Purchase is an inbound stock document (header). Stock is only
// incremented when the purchase transitions into COMPLETED; prices are
// applied to the ledger already at creation time.
type Purchase struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SupplierID uuid.UUID      `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier   *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Date       time.Time      `gorm:"not null" json:"date"`
	Total      int64          `gorm:"not null" json:"total"` // Σ purchase_price × quantity
	Status     PurchaseStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Items      []PurchaseItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

type PurchaseItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PurchaseID uint      `gorm:"index;not null" json:"purchase_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`

	// Resolved at creation: caller override if present, else the
	// ledger price at that moment.
	PurchasePrice int64 `gorm:"not null" json:"purchase_price"`
	SalePrice     int64 `gorm:"not null" json:"sale_price"`
	LineTotal     int64 `gorm:"not null" json:"line_total"`
}
