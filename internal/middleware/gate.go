package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// RequireSuperadmin restricts a route group to superadmin sessions. A logged
// in admin without the role is sent back to the dashboard with a warning;
// the check never mutates any state.
func RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentAdminID(c) == 0 {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "authentication required", "/login")
		}

		if CurrentAdminRole(c) != models.RoleSuperadmin {
			return utils.SendRedirect(c, fiber.StatusForbidden, "you do not have permission to access that page", "/dashboard")
		}

		return c.Next()
	}
}
