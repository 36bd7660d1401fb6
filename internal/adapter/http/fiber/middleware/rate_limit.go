package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/seu-repo/concierge-ai/pkg/config"
)

// NewRateLimiter throttles per client IP to keep one chatty client from
// starving the classification provider budget.
func NewRateLimiter(cfg config.RateLimitingConfig) fiber.Handler {
	max := cfg.MaxRequests
	if max <= 0 {
		max = 60
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, slow down",
			})
		},
	})
}
