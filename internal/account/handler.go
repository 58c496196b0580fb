package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type openRequest struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

type accountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Direction string          `json:"direction"`
}

func toResponse(acct Account) accountResponse {
	return accountResponse{
		ID:        acct.ID,
		Name:      acct.Name,
		Balance:   acct.Balance,
		Direction: string(acct.Direction),
	}
}

// Open creates a new ledger account.
func (h *Handler) Open(c *fiber.Ctx) error {
	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acct, err := h.service.Open(c.UserContext(), OpenInput{Name: req.Name, Direction: req.Direction})
	if err != nil {
		if errors.Is(err, ErrInvalidDirection) || errors.Is(err, ErrDuplicateAccount) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(acct))
}

// Get returns an account snapshot.
func (h *Handler) Get(c *fiber.Ctx) error {
	acct, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(acct))
}
