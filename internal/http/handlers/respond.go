package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// idParam reads a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	return n, err == nil && n > 0
}

func badID(c *fiber.Ctx, name string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": name, "value": c.Params(name)})
	return fail(c, fiber.StatusBadRequest, "invalid "+name)
}

// respondErr maps a service error onto the response. Store faults are
// logged under action and answered with faultMsg only.
func respondErr(c *fiber.Ctx, action string, err error, notFoundMsg, faultMsg string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": ve.Msg})
		return fail(c, fiber.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "Cart is empty")
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, notFoundMsg)
	default:
		applog.Error(c, action+".fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, faultMsg)
	}
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(messageResponse{Message: msg})
}
