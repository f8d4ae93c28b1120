package repository

import (
	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// Create and UpdateStatus take the caller's *gorm.DB so they
	// participate in the workflow transaction.
	Create(tx *gorm.DB, purchase *model.Purchase) error
	UpdateStatus(tx *gorm.DB, id uint, status model.PurchaseStatus, updatedBy string) error
	FindByID(id uint) (*model.Purchase, error)
	FindAll() ([]model.Purchase, error)
	Delete(id uint) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) UpdateStatus(tx *gorm.DB, id uint, status model.PurchaseStatus, updatedBy string) error {
	return tx.Model(&model.Purchase{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *purchaseRepo) FindByID(id uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Items").Preload("Supplier").First(&purchase, "id = ?", id).Error
	return &purchase, err
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Items").Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

// Delete is a hard delete of the document and its items. It does not
// touch stock: a completed purchase's increment stays applied.
func (r *purchaseRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&model.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Purchase{}, "id = ?", id).Error
	})
}
