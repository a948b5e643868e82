package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfix/booking-service/internal/api/http/handlers"
	"github.com/quickfix/booking-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Bookings        *handlers.BookingsHandler
	Admin           *handlers.AdminHandler
	Setup           *handlers.SetupHandler
	AdminMiddleware *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	bookings := api.Group("/bookings")
	bookings.Post("/", cfg.Bookings.CreateBooking)
	bookings.Get("/customer/:email", cfg.Bookings.GetBookingsByEmail)
	bookings.Get("/:id", cfg.Bookings.GetBooking)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)

	protected := admin.Group("", cfg.AdminMiddleware.Handle)
	protected.Get("/bookings", cfg.Admin.ListBookings)
	protected.Put("/bookings/:id", cfg.Admin.UpdateBooking)
	protected.Delete("/bookings/:id", cfg.Admin.DeleteBooking)
	protected.Get("/dashboard/stats", cfg.Admin.DashboardStats)

	setup := api.Group("/setup")
	setup.Get("/admin-status", cfg.Setup.AdminStatus)
	setup.Post("/create-admin", cfg.Setup.CreateAdmin)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}
