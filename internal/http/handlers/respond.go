package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pedidos/internal/domain"
	applog "pedidos/internal/log"
)

// fail maps a service error onto the right status code without leaking
// internals: NotFound -> 404, ValidationError -> 400, everything else -> 500
// with a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &verr):
		applog.Warn(c, action+".invalid", map[string]any{"reason": verr.Msg})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please retry"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	applog.Warn(c, "validation.fail", map[string]any{"reason": msg})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
