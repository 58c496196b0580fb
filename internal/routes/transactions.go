package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openbook-ledger/openbook/internal/ledger"
)

// RegisterTransactionRoutes wires transaction endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/transactions", h.Submit)
	r.Get("/transactions/:id", h.Get)
}
