package model

import (
	"time"

	"github.com/google/uuid"
)

type SaleStatus string

// Post-creation lifecycle vocabulary. Stock is decremented when the
// sale is created, not on any of these transitions.
const (
	SaleProcessing SaleStatus = "processing"
	SaleShipped    SaleStatus = "shipped"
	SaleDelivered  SaleStatus = "delivered"
	SaleCompleted  SaleStatus = "completed"
	SaleRefunded   SaleStatus = "refunded"
)

type Sale struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	ClientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Date     time.Time  `gorm:"not null" json:"date"`
	Total    int64      `gorm:"not null" json:"total"` // Σ sale_price × quantity at sale time
	Status   SaleStatus `gorm:"type:varchar(20);not null;default:'processing'" json:"status"`
	Items    []SaleItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

type SaleItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SaleID    uint      `gorm:"index;not null" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // ledger sale price snapshot
	LineTotal int64     `gorm:"not null" json:"line_total"`
}
