package handler

import (
	"go-backoffice/internal/service"
	"go-backoffice/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var input service.CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	sale, err := h.service.Create(&input, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(sale)
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	sale, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.service.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}
