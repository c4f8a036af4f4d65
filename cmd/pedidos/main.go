package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"pedidos/internal/config"
	"pedidos/internal/http/handlers"
	applog "pedidos/internal/log"
	"pedidos/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and keep internals out of the response
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please retry",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	// Open CORS while the storefront moves between hosts
	app.Use(cors.New())

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	// Products
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/:id", deps.ProductHandler.Get)
	app.Post("/products", deps.ProductHandler.Create)
	app.Put("/products/:id", deps.ProductHandler.Update)
	app.Delete("/products/:id", deps.ProductHandler.Delete)
	app.Post("/products/import", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.import.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.ProductHandler.Import)

	// Customers
	app.Get("/customers", deps.CustomerHandler.List)
	app.Get("/customers/:id", deps.CustomerHandler.Get)
	app.Post("/customers", deps.CustomerHandler.Create)
	app.Put("/customers/:id", deps.CustomerHandler.Update)
	app.Delete("/customers/:id", deps.CustomerHandler.Delete)

	// Orders. The history route must register before :id.
	app.Get("/orders/history", deps.OrderHandler.History)
	app.Get("/orders", deps.OrderHandler.List)
	app.Get("/orders/:id", deps.OrderHandler.Get)
	app.Post("/orders", deps.OrderHandler.Create)
	app.Put("/orders/:id", deps.OrderHandler.Update)
	app.Delete("/orders/:id", deps.OrderHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
