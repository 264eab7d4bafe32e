package handlers

import (
	"errors"
	"time"

	"veneya/internal/repos"
	"veneya/internal/services"
	"veneya/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Accounts *services.AccountService
	Log      *zap.Logger
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

type registerReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Secret          string `json:"secret"`
	AverageEarnings string `json:"average_earnings"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid username"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	if !validate.Secret(req.Secret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid password"})
	}
	earnings, ok := validate.Earnings(req.AverageEarnings)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid average earnings"})
	}

	id, err := h.Accounts.Register(username, email, req.Secret, earnings)
	if err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username or email already in use"})
		}
		h.Log.Error("register failed", zap.String("username", username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create account, please retry"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"account_id": id})
}

type loginReq struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	sid := ensureSID(c)
	a, err := h.Accounts.Login(sid, req.Username, req.Secret)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			h.Log.Warn("login rejected", zap.String("username", req.Username))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed, please retry"})
	}
	return c.JSON(fiber.Map{"account_id": a.ID, "username": a.Username})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Accounts.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	return c.JSON(fiber.Map{"ok": true})
}

type recoverReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	AverageEarnings string `json:"average_earnings"`
}

// Recover verifies the recovery answers and returns the freshly generated
// password for one-time display.
func (h *AuthHandler) Recover(c *fiber.Ctx) error {
	var req recoverReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	newSecret, err := h.Accounts.RecoverSecret(req.Username, req.Email, req.AverageEarnings)
	if err != nil {
		if errors.Is(err, services.ErrRecoveryMismatch) {
			h.Log.Warn("recovery rejected", zap.String("username", req.Username))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "the details provided do not match our records"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not reset password, please retry"})
	}
	return c.JSON(fiber.Map{"new_secret": newSecret})
}

// DeleteAccount removes the logged-in account and its products.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	a := currentAccount(c)
	if err := h.Accounts.Delete(a.ID); err != nil {
		h.Log.Error("account delete failed", zap.Int64("account_id", a.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete account, please retry"})
	}
	_ = h.Accounts.Logout(ensureSID(c))
	return c.JSON(fiber.Map{"ok": true})
}
