package handler

import (
	"go-backoffice/internal/service"
	"go-backoffice/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input service.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	order, err := h.service.Create(&input, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(order)
}

// UpdateStatus handles PUT /orders/:id. The only mutable field of an
// order after creation is its status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	order, err := h.service.UpdateStatus(id, body.Status, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	order, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}
