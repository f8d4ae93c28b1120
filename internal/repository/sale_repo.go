package repository

import (
	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uint) (*model.Sale, error)
	FindAll() ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uint) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Client").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}
