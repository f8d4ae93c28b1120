package service

import (
	"errors"
	"strconv"
	"time"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/apperr"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`

	// Optional overrides; when absent the ledger prices are kept.
	PurchasePrice *int64 `json:"purchase_price" validate:"omitempty,gt=0"`
	SalePrice     *int64 `json:"sale_price" validate:"omitempty,gt=0"`
}

type CreatePurchaseInput struct {
	SupplierID uuid.UUID            `json:"supplier_id" validate:"uuid_required"`
	Date       *time.Time           `json:"date"`
	Status     model.PurchaseStatus `json:"status" validate:"omitempty,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
	Items      []PurchaseItemInput  `json:"items" validate:"required,min=1,dive"`
}

type PurchaseService interface {
	Create(input *CreatePurchaseInput, actor string) (*model.Purchase, error)
	ChangeStatus(id uint, newStatus model.PurchaseStatus, actor string) (*model.Purchase, error)
	GetByID(id uint) (*model.Purchase, error)
	List() ([]model.Purchase, error)
	Delete(id uint) error
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	db           *gorm.DB
	auditor      *Auditor
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	db *gorm.DB,
	auditor *Auditor,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		db:           db,
		auditor:      auditor,
	}
}

// Create validates the document, resolves effective prices and writes
// them to the ledger immediately: pricing reflects the latest purchase
// cost even before the purchase is confirmed. Stock is NOT touched
// here; that happens only on the transition into COMPLETED.
func (s *purchaseService) Create(input *CreatePurchaseInput, actor string) (*model.Purchase, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}

	if _, err := s.supplierRepo.FindByID(input.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier")
		}
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.PurchasePending
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	purchase := &model.Purchase{
		SupplierID: input.SupplierID,
		Date:       date,
		Status:     status,
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total int64
		for _, item := range input.Items {
			product, err := s.productRepo.FindByIDForUpdate(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product")
				}
				return err
			}

			purchasePrice := product.PurchasePrice
			if item.PurchasePrice != nil {
				purchasePrice = *item.PurchasePrice
			}
			salePrice := product.SalePrice
			if item.SalePrice != nil {
				salePrice = *item.SalePrice
			}

			if err := s.productRepo.UpdatePrices(tx, product.ID, &purchasePrice, &salePrice); err != nil {
				return err
			}

			lineTotal := purchasePrice * int64(item.Quantity)
			total += lineTotal
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				PurchasePrice: purchasePrice,
				SalePrice:     salePrice,
				LineTotal:     lineTotal,
			})
		}

		purchase.Total = total
		return s.purchaseRepo.Create(tx, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(actor, "purchase_created", "purchase", formatID(purchase.ID), nil, purchase)
	return purchase, nil
}

// ChangeStatus moves a purchase through its lifecycle. The transition
// into COMPLETED increments stock for every line item exactly once:
// re-entering COMPLETED is rejected so the side effect can never be
// double-applied.
func (s *purchaseService) ChangeStatus(id uint, newStatus model.PurchaseStatus, actor string) (*model.Purchase, error) {
	if !newStatus.Valid() {
		return nil, apperr.Validation("invalid purchase status '%s'", newStatus)
	}

	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("purchase")
		}
		return nil, err
	}

	oldStatus := purchase.Status
	if oldStatus == model.PurchaseCompleted && newStatus == model.PurchaseCompleted {
		return nil, apperr.TerminalTransition(string(oldStatus), string(newStatus))
	}

	if newStatus == model.PurchaseCompleted {
		// One transaction wraps every stock increment and the status
		// write: either the whole completion lands or none of it.
		err = s.db.Transaction(func(tx *gorm.DB) error {
			for _, item := range purchase.Items {
				if err := s.productRepo.AdjustStock(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return s.purchaseRepo.UpdateStatus(tx, purchase.ID, newStatus, actor)
		})
	} else {
		// No stock effect; CANCELLED does not reverse a prior
		// completion.
		err = s.purchaseRepo.UpdateStatus(s.db, purchase.ID, newStatus, actor)
	}
	if err != nil {
		return nil, err
	}
	purchase.Status = newStatus
	purchase.UpdatedBy = actor

	s.auditor.Record(actor, "purchase_status_changed", "purchase", formatID(purchase.ID),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": newStatus})
	return purchase, nil
}

func (s *purchaseService) GetByID(id uint) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("purchase")
		}
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) List() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *purchaseService) Delete(id uint) error {
	if _, err := s.purchaseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("purchase")
		}
		return err
	}
	return s.purchaseRepo.Delete(id)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// wrapInsufficient names the product in a storage-level stock
// rejection so the caller knows which line item failed.
func wrapInsufficient(err error, productName string) error {
	if errors.Is(err, apperr.ErrInsufficientStock) {
		return apperr.InsufficientStock(productName)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("product")
	}
	return err
}
