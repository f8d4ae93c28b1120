package handler

import (
	"go-backoffice/internal/model"
	"go-backoffice/internal/service"
	"go-backoffice/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var input service.CreatePurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	purchase, err := h.service.Create(&input, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(purchase)
}

func (h *PurchaseHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	var body struct {
		Status model.PurchaseStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}

	purchase, err := h.service.ChangeStatus(id, body.Status, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchase)
}

func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	purchase, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchase)
}

func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	purchases, err := h.service.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase deleted"})
}
