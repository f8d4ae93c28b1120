package model

type ClientStatus string

const (
	ClientActive   ClientStatus = "ACTIVE"
	ClientInactive ClientStatus = "INACTIVE"
)

// Client is a customer directory entry. Inactive clients cannot place
// orders.
type Client struct {
	BaseModel
	Name   string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email  string       `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone  string       `gorm:"type:varchar(20)" json:"phone"`
	Status ClientStatus `gorm:"type:varchar(10);default:'ACTIVE'" json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}
