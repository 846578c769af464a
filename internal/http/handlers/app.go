package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	applog "bookstore/internal/log"
)

type Options struct {
	AccessLog   bool // one http.access entry per request through applog
	RateLimit   int  // requests per minute per IP, 0 disables
	CORSOrigins string
}

// NewApp builds the Fiber app with middleware and every route mounted.
func NewApp(d *Deps, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bookstore",
		Views:        Views(),
		BodyLimit:    1 << 20, // 1 MiB
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(accessLog())
	}
	// The API is consumed by a separately served frontend.
	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				return fail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
			},
		}))
	}

	Mount(app, d)
	return app
}

// accessLog records each request as a JSON line beside the application
// log. Chain errors are rendered here so the entry carries the final status.
func accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		applog.Info(c, "http.access", map[string]any{
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}
}

// ErrorHandler is the last line for errors no handler turned into a
// response. Server-side details are logged, never sent.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong!"
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return fail(c, code, msg)
}

func Mount(app *fiber.App, d *Deps) {
	app.Get("/", d.StorefrontHandler.Index)

	api := app.Group("/api")
	api.Get("/health", Health)

	api.Post("/checkout", d.OrderHandler.Checkout)

	orders := api.Group("/orders")
	orders.Post("/checkout", d.OrderHandler.Checkout)
	orders.Get("/by-buyer/:buyerId", d.OrderHandler.ByBuyer)
	orders.Get("/buyer/:buyerId", d.OrderHandler.ByBuyer)
	orders.Get("/by-seller/:sellerId", d.OrderHandler.BySeller)
	orders.Get("/seller/:sellerId", d.OrderHandler.BySeller)
	orders.Get("/stats/seller/:sellerId", d.OrderHandler.SellerStats)
	orders.Put("/:id/status", d.OrderHandler.SetStatus)
	orders.Get("/:id", d.OrderHandler.Get)

	cart := api.Group("/cart")
	cart.Get("/buyer/:buyerId", d.CartHandler.List)
	cart.Get("/total/:buyerId", d.CartHandler.Total)
	cart.Post("/", d.CartHandler.Add)
	cart.Put("/:id", d.CartHandler.SetQuantity)
	cart.Delete("/buyer/:buyerId", d.CartHandler.Clear)
	cart.Delete("/:id", d.CartHandler.Remove)

	products := api.Group("/products")
	products.Get("/", d.ProductHandler.List)
	products.Get("/search", d.ProductHandler.Search)
	products.Get("/seller/:sellerId", d.ProductHandler.BySeller)
	products.Get("/:id", d.ProductHandler.Get)
	products.Post("/", d.ProductHandler.Create)
	products.Put("/:id", d.ProductHandler.Update)
	products.Delete("/:id", d.ProductHandler.Delete)

	users := api.Group("/users")
	users.Get("/", d.UserHandler.List)
	users.Get("/role/:role", d.UserHandler.ByRole)
	users.Get("/:id", d.UserHandler.Get)
	users.Post("/", d.UserHandler.Create)
	users.Put("/:id", d.UserHandler.Update)
	users.Delete("/:id", d.UserHandler.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
			"path":  c.OriginalURL(),
		})
	})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Bookstore API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
