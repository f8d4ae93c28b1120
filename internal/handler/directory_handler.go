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

// DirectoryHandler covers the supplier/client directory the workflows
// reference. Registration and reads only; the directory proper is an
// upstream concern.
type DirectoryHandler struct {
	suppliers repository.SupplierRepository
	clients   repository.ClientRepository
}

func NewDirectoryHandler(suppliers repository.SupplierRepository, clients repository.ClientRepository) *DirectoryHandler {
	return &DirectoryHandler{suppliers: suppliers, clients: clients}
}

func (h *DirectoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}
	if errs := validator.ValidateStruct(&supplier); len(errs) > 0 {
		first := errs[0]
		return fail(c, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag))
	}

	supplier.CreatedBy = actor(c)
	supplier.UpdatedBy = actor(c)
	if err := h.suppliers.Create(&supplier); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(supplier)
}

func (h *DirectoryHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.suppliers.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *DirectoryHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid supplier ID"))
	}
	supplier, err := h.suppliers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.NotFound("supplier"))
		}
		return fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return fail(c, apperr.Validation("invalid JSON"))
	}
	if errs := validator.ValidateStruct(&client); len(errs) > 0 {
		first := errs[0]
		return fail(c, apperr.Validation("field '%s' failed on rule '%s'", first.FailedField, first.Tag))
	}

	client.CreatedBy = actor(c)
	client.UpdatedBy = actor(c)
	if client.Status == "" {
		client.Status = model.ClientActive
	}
	if err := h.clients.Create(&client); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(client)
}

func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clients.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(clients)
}

func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid client ID"))
	}
	client, err := h.clients.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.NotFound("client"))
		}
		return fail(c, err)
	}
	return c.JSON(client)
}
