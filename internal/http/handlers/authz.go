package handlers

import (
	applog "ramtekagro/internal/log"
	"ramtekagro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireStaff gates the console to logged-in staff. Both roles see the same
// console; there is no permission difference between staff and admin.
func RequireStaff(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/staff/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.staff", map[string]any{"sid": sid})
			return c.Redirect("/staff/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
