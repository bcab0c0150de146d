package handlers

import (
	"context"
	"errors"
	"strconv"

	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// parseBody decodes and validates the request body into req. When ok is false
// the 400 response has been written and the handler should return err as is.
func parseBody(c *fiber.Ctx, v *validator.Validator, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := v.Struct(req); err != nil {
		var fields validator.FieldErrors
		if errors.As(err, &fields) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": fields,
			})
		}
		return false, errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return true, nil
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
