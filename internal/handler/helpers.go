package handler

import (
	"strconv"

	"go-backoffice/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// actor returns the acting user's display name from the JWT context
// (set by the auth middleware).
func actor(c *fiber.Ctx) string {
	if name, ok := c.Locals("user_name").(string); ok && name != "" {
		return name
	}
	return "system"
}

// parseID parses a sequential record id from a route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id '%s'", c.Params("id"))
	}
	return uint(id), nil
}

// fail renders an error with the status the taxonomy assigns to it.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
