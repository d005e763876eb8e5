package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/backoffice-api/internal/api/http/handlers"
	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Orders         *handlers.ResourceHandler[domain.Order]
	Products       *handlers.ResourceHandler[domain.Product]
	Employees      *handlers.ResourceHandler[domain.Employee]
	AuthMiddleware *auth.AuthMiddleware
	Accounts       auth.AccountReader
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	gated := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAccount(cfg.Accounts)}
	authGroup.Get("/me", append(gated, cfg.Auth.Me)...)

	registerResource(app.Group("/orders", gated...), cfg.Orders)
	registerResource(app.Group("/products", gated...), cfg.Products)
	registerResource(app.Group("/employees", gated...), cfg.Employees)
}

func registerResource[T domain.Body[T]](router fiber.Router, h *handlers.ResourceHandler[T]) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}
