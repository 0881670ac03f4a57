package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sumitk/ai-interviewer/internal/services"
)

// respondError maps service errors onto HTTP status codes. Unclassified
// errors become 500s with a generic message so internals never leak.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrCapability):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "An external service is temporarily unavailable. Please try again.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
