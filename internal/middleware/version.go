package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// APIVersion stores the version of the route group in context and echoes it in X-Api-Version
func APIVersion(version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalAPIVersion, version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
