package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a rate limiter keyed by the acting admin when a session
// exists and by client IP otherwise. Public endpoints such as the contact
// form rely on the IP fallback.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			key := c.IP()
			if adminID := CurrentAdminID(c); adminID != 0 {
				key = fmt.Sprintf("admin-%d", adminID)
			}
			return fmt.Sprintf("%s:%s", identifier, key)
		},
	})
}
