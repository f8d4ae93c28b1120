package repository

import (
	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	UpdateStatus(tx *gorm.DB, id uint, status, updatedBy string) error
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) UpdateStatus(tx *gorm.DB, id uint, status, updatedBy string) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Client").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}
