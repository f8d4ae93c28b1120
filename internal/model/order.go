package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses are free-form strings; only these three carry
// workflow meaning. "paid" triggers the one-time stock decrement,
// "paid" and "cancelled" gate further transitions.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	ClientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Total    int64       `gorm:"not null" json:"total"` // Σ sale_price × quantity at creation
	Status   string      `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	Items    []OrderItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	LineTotal int64     `gorm:"not null" json:"line_total"`
}
