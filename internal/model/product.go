package model

type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductOnOffer      ProductStatus = "ON_OFFER"
)

// Product is the ledger record: the single source of truth for live
// stock and prices. Prices are stored in minor currency units.
type Product struct {
	BaseModel
	SKU           string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Stock         int           `gorm:"default:0" json:"stock" validate:"gte=0"`
	PurchasePrice int64         `gorm:"default:0" json:"purchase_price" validate:"gte=0"`
	SalePrice     int64         `gorm:"default:0" json:"sale_price" validate:"gte=0"`
	Status        ProductStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status" validate:"omitempty,oneof=ACTIVE DISCONTINUED OUT_OF_STOCK ON_OFFER"`
}
