// Package maintenance provides a middleware gating the application while
// maintenance mode is enabled.
//
// When the maintenance flag is set, all requests are answered with a 503
// except for login, logout and requests from users holding the settings
// administration permission, so administrators can still turn the flag off.
package maintenance

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/settings"
)

// Middleware returns a Fiber middleware enforcing maintenance mode.
func Middleware(db *gorm.DB, authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !settings.MaintenanceMode(db) {
			return c.Next()
		}

		originalURL := strings.ToLower(c.OriginalURL())
		for _, prefix := range []string{"/login", "/logout", "/auth/oidc", "/metrics", "/checkalive"} {
			if strings.HasPrefix(originalURL, prefix) {
				return c.Next()
			}
		}

		// Settings administrators keep access so the flag can be cleared.
		if sessData := auth.UserFromContext(c); sessData != nil {
			hasPermission, err := authService.HasPermission(sessData.User.ID, auth.PermAdminSettings)
			if err == nil && hasPermission {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "the platform is down for maintenance",
		})
	}
}
