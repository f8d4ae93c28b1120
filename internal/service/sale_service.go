package service

import (
	"errors"
	"time"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/apperr"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleInput struct {
	ClientID uuid.UUID       `json:"client_id" validate:"uuid_required"`
	Date     *time.Time      `json:"date"`
	Items    []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

type SaleService interface {
	Create(input *CreateSaleInput, actor string) (*model.Sale, error)
	GetByID(id uint) (*model.Sale, error)
	List() ([]model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	db          *gorm.DB
	auditor     *Auditor
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	db *gorm.DB,
	auditor *Auditor,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		db:          db,
		auditor:     auditor,
	}
}

// Create records a sale and decrements stock per line item at creation
// time. The whole line-item loop and the sale document share one
// transaction: if any item lacks stock the earlier decrements roll
// back and the caller sees the state exactly as it was.
func (s *saleService) Create(input *CreateSaleInput, actor string) (*model.Sale, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}

	if _, err := s.clientRepo.FindByID(input.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client")
		}
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	sale := &model.Sale{
		ClientID:  input.ClientID,
		Date:      date,
		Status:    model.SaleProcessing,
		CreatedBy: actor,
		UpdatedBy: actor,
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

			if item.Quantity > product.Stock {
				return apperr.InsufficientStock(product.Name)
			}
			if err := s.productRepo.AdjustStock(tx, product.ID, -item.Quantity); err != nil {
				return wrapInsufficient(err, product.Name)
			}

			lineTotal := product.SalePrice * int64(item.Quantity)
			total += lineTotal
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.SalePrice,
				LineTotal: lineTotal,
			})
		}

		sale.Total = total
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(actor, "sale_created", "sale", formatID(sale.ID), nil, sale)
	return sale, nil
}

func (s *saleService) GetByID(id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sale")
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) List() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
