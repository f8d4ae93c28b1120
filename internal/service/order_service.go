package service

import (
	"errors"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/apperr"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	ClientID uuid.UUID        `json:"client_id" validate:"uuid_required"`
	Items    []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderService interface {
	Create(input *CreateOrderInput, actor string) (*model.Order, error)
	UpdateStatus(id uint, newStatus string, actor string) (*model.Order, error)
	GetByID(id uint) (*model.Order, error)
	List() ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	db          *gorm.DB
	auditor     *Auditor
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	db *gorm.DB,
	auditor *Auditor,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		db:          db,
		auditor:     auditor,
	}
}

// checkTransition is the order state table. Paid is terminal towards
// cancelled and towards itself; cancelled is terminal absolutely.
// Everything else is free-form.
func checkTransition(from, to string) error {
	switch {
	case from == model.OrderCancelled:
		return apperr.TerminalTransition(from, to)
	case from == model.OrderPaid && to == model.OrderCancelled:
		return apperr.TerminalTransition(from, to)
	case from == model.OrderPaid && to == model.OrderPaid:
		return apperr.TerminalTransition(from, to)
	}
	return nil
}

// Create opens a pending order. Stock is checked for sufficiency but
// NOT reserved; the decrement happens on the pending→paid transition,
// where sufficiency is re-checked under lock.
func (s *orderService) Create(input *CreateOrderInput, actor string) (*model.Order, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}

	client, err := s.clientRepo.FindByID(input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client")
		}
		return nil, err
	}
	if client.Status == model.ClientInactive {
		return nil, apperr.Validation("client '%s' is inactive", client.Name)
	}

	order := &model.Order{
		ClientID:  input.ClientID,
		Status:    model.OrderPending,
		CreatedBy: actor,
		UpdatedBy: actor,
	}

	var total int64
	for _, item := range input.Items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("product")
			}
			return nil, err
		}
		if item.Quantity > product.Stock {
			return nil, apperr.InsufficientStock(product.Name)
		}

		lineTotal := product.SalePrice * int64(item.Quantity)
		total += lineTotal
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.SalePrice,
			LineTotal: lineTotal,
		})
	}
	order.Total = total

	if err := s.orderRepo.Create(s.db, order); err != nil {
		return nil, err
	}

	s.auditor.Record(actor, "order_created", "order", formatID(order.ID), nil, order)
	return order, nil
}

// UpdateStatus applies a status change. Terminal guards run before any
// other logic; the paid transition decrements stock for every line
// item exactly once, all inside a single transaction.
func (s *orderService) UpdateStatus(id uint, newStatus string, actor string) (*model.Order, error) {
	if newStatus == "" {
		return nil, apperr.Validation("status is required")
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}

	oldStatus := order.Status
	if err := checkTransition(oldStatus, newStatus); err != nil {
		return nil, err
	}

	if newStatus == model.OrderPaid {
		// Stock may have moved since the order was created, so every
		// item is re-checked under lock right before its decrement.
		err = s.db.Transaction(func(tx *gorm.DB) error {
			for _, item := range order.Items {
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
			}
			return s.orderRepo.UpdateStatus(tx, order.ID, newStatus, actor)
		})
	} else {
		// Includes cancelled-from-pending: nothing was reserved at
		// creation, so there is nothing to release.
		err = s.orderRepo.UpdateStatus(s.db, order.ID, newStatus, actor)
	}
	if err != nil {
		return nil, err
	}
	order.Status = newStatus
	order.UpdatedBy = actor

	s.auditor.Record(actor, "order_status_changed", "order", formatID(order.ID),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": newStatus})
	return order, nil
}

func (s *orderService) GetByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) List() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}
