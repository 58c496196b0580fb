package ledger

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/openbook-ledger/openbook/internal/account"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type entryRequest struct {
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id"`
}

type submitRequest struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Entries []entryRequest `json:"entries"`
}

type entryResponse struct {
	ID        string          `json:"id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id"`
}

type transactionResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name,omitempty"`
	Entries []entryResponse `json:"entries"`
}

func toResponse(transaction Transaction) transactionResponse {
	entries := make([]entryResponse, 0, len(transaction.Entries))
	for _, entry := range transaction.Entries {
		entries = append(entries, entryResponse{
			ID:        entry.ID,
			Direction: string(entry.Direction),
			Amount:    entry.Amount,
			AccountID: entry.AccountID,
		})
	}
	return transactionResponse{ID: transaction.ID, Name: transaction.Name, Entries: entries}
}

// Submit records a transaction.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	entries := make([]EntryCommand, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, EntryCommand{
			Direction: entry.Direction,
			Amount:    entry.Amount,
			AccountID: entry.AccountID,
		})
	}

	transaction, err := h.service.Apply(c.UserContext(), Command{Name: req.Name, Entries: entries}, req.ID)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(transaction))
}

// Get returns a persisted transaction.
func (h *Handler) Get(c *fiber.Ctx) error {
	transaction, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(transaction))
}

// statusFor maps engine errors to HTTP statuses so every error kind stays
// distinguishable at the transport boundary.
func statusFor(err error) int {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, account.ErrInvalidDirection),
		errors.Is(err, ErrNonPositiveAmount),
		errors.Is(err, ErrMissingAccountReference),
		errors.Is(err, ErrEmptyTransaction),
		errors.Is(err, ErrTransactionUnbalanced):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
