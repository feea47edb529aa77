package handlers

import (
	"errors"
	"log"

	"devconnect/internal/service"

	"github.com/gofiber/fiber/v3"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and returned as a generic 500 without leaking internals.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "User not authorized",
		})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserLocked):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	default:
		log.Printf("Unhandled service error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
}
