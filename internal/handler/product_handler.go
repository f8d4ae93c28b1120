package handler

import (
	"errors"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/apperr"
	"go-backoffice/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductHandler exposes the ledger's read surface plus product
// registration. Stock and prices are mutated only through the
// purchase/sale/order workflows.
type ProductHandler struct {
	repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	if errs := validator.ValidateStruct(&product); len(errs) > 0 {
		first := errs[0]
		return fail(c, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag))
	}

	product.CreatedBy = actor(c)
	product.UpdatedBy = actor(c)
	if product.Status == "" {
		product.Status = model.ProductActive
	}

	if err := h.repo.Create(&product); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid product ID"))
	}

	product, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.NotFound("product"))
		}
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.repo.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}
