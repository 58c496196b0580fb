package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openbook-ledger/openbook/internal/account"
)

// RegisterAccountRoutes wires account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Open)
	r.Get("/accounts/:id", h.Get)
}
