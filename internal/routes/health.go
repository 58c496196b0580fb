package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealthRoutes adds a liveness/readiness endpoint covering the
// optional backing services.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		status := http.StatusOK
		checks := fiber.Map{}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				checks["postgres"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["postgres"] = "ok"
			}
		}
		if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["redis"] = "ok"
			}
		}

		body := fiber.Map{
			"status":    "UP",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if status != http.StatusOK {
			body["status"] = "DOWN"
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		return c.Status(status).JSON(body)
	})
}
