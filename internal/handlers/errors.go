package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"intervisio/interview-api/internal/services"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{services.ErrValidation, fiber.StatusBadRequest},
	{services.ErrNotFound, fiber.StatusNotFound},
	{services.ErrServiceUnavailable, fiber.StatusServiceUnavailable},
	{services.ErrUpstream, fiber.StatusInternalServerError},
}

// ErrorHandler renders every error as {"detail": ..., "code": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		detail = fiberErr.Message
	} else {
		for _, s := range statusBySentinel {
			if errors.Is(err, s.err) {
				code = s.status
				detail = strings.TrimPrefix(detail, s.err.Error()+": ")
				break
			}
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": detail,
		"code":   code,
	})
}
