package main

import (
	stdlog "log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"veneya/internal/config"
	"veneya/internal/http/handlers"
	applog "veneya/internal/log"
	"veneya/internal/repos"
)

func main() {
	cfg := config.Load()

	zlog, err := applog.New(cfg.LogFile)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// A broken schema is fatal; nothing can run without it.
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		zlog.Fatal("open database", zap.Error(err))
	}

	deps := handlers.NewDeps(db, cfg, zlog)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			zlog.Error("server error", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	api := app.Group("/api/v1")

	// Account lifecycle
	api.Post("/accounts", deps.AuthHandler.Register)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/logout", deps.AuthHandler.Logout)
	api.Post("/recover", limiter.New(limiter.Config{Max: 5, Expiration: 10 * time.Minute}), deps.AuthHandler.Recover)
	api.Delete("/account", handlers.RequireAccount(deps.Accounts), deps.AuthHandler.DeleteAccount)

	// Products
	api.Get("/products", handlers.RequireAccount(deps.Accounts), deps.ProductHandler.List)
	api.Post("/products", handlers.RequireAccount(deps.Accounts), deps.ProductHandler.Create)

	// Sales & reports
	api.Post("/checkout", handlers.RequireAccount(deps.Accounts), deps.CheckoutHandler.Place)
	api.Get("/report/zones", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.Zones)
	api.Get("/report/zones/:zone", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.ZoneDetail)
	api.Get("/report/zones/:zone/sales", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.ZoneSales)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	zlog.Fatal("server stopped", zap.Error(app.Listen(":"+cfg.Port)))
}
