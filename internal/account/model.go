package account

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction is the side of the books a movement or an account sits on. For an
// account it is the normal balance side (its polarity); for an entry it is the
// side the amount moves.
type Direction string

const (
	// Debit is the debit side.
	Debit Direction = "debit"
	// Credit is the credit side.
	Credit Direction = "credit"
)

// ParseDirection validates a raw direction value.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case Debit, Credit:
		return Direction(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, raw)
	}
}

// Account is a ledger account with a running balance. Accounts are value
// types: every copy crossing the store boundary is independent, so callers
// can never mutate canonical state outside the store's update path.
type Account struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	Direction Direction
}

// New builds a zero-balance account with the given polarity.
func New(id, name string, direction Direction) Account {
	return Account{ID: id, Name: name, Balance: decimal.Zero, Direction: direction}
}

// ApplyEntry moves the balance by amount. A movement on the account's own
// side increases the balance, the opposite side decreases it. This is the
// only rule by which balances change.
func (a *Account) ApplyEntry(direction Direction, amount decimal.Decimal) {
	if a.Direction == direction {
		a.Balance = a.Balance.Add(amount)
	} else {
		a.Balance = a.Balance.Sub(amount)
	}
}
