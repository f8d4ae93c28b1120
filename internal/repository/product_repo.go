package repository

import (
	"go-backoffice/internal/model"
	"go-backoffice/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error
	UpdatePrices(tx *gorm.DB, id uuid.UUID, purchasePrice, salePrice *int64) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

// FindByIDForUpdate loads a product within the caller's transaction so
// the row stays pinned for the duration of a check-and-mutate sequence.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error
	return &product, err
}

// AdjustStock applies delta to the product's stock in a single
// conditional UPDATE. The WHERE clause carries the non-negativity
// invariant, so two concurrent decrements can never both pass a stale
// sufficiency check and drive stock below zero.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("product")
		}
		return apperr.ErrInsufficientStock
	}
	return nil
}

// UpdatePrices persists the given prices on the ledger record. Nil
// means "leave unchanged".
func (r *productRepo) UpdatePrices(tx *gorm.DB, id uuid.UUID, purchasePrice, salePrice *int64) error {
	updates := map[string]interface{}{}
	if purchasePrice != nil {
		updates["purchase_price"] = *purchasePrice
	}
	if salePrice != nil {
		updates["sale_price"] = *salePrice
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error
}
