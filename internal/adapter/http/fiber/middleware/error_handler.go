package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

// ErrorHandler translates errors into JSON responses. Internal failures
// are logged with detail but surfaced as a generic message; guests never
// see raw error text.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, domain.ErrPersistence):
			code = fiber.StatusServiceUnavailable
			message = "temporarily unable to process your message, please retry"
		}

		if code == fiber.StatusInternalServerError || code == fiber.StatusServiceUnavailable {
			log.Error("Request failed",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.Int("status", code))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
