package handlers

import (
	"veneya/internal/domain"
	"veneya/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAccount rejects requests without a bound session and stores the
// account in Locals for downstream handlers.
func RequireAccount(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		a, err := accounts.CurrentAccount(sid)
		if err != nil || a == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals("account", a)
		return c.Next()
	}
}

// currentAccount reads what RequireAccount stored.
func currentAccount(c *fiber.Ctx) *domain.Account {
	a, _ := c.Locals("account").(*domain.Account)
	return a
}
