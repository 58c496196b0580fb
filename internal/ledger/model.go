package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbook-ledger/openbook/internal/account"
)

// Entry is one movement of an amount against one account, always part of
// exactly one transaction and immutable once built.
type Entry struct {
	ID        string
	Direction account.Direction
	Amount    decimal.Decimal
	AccountID string
}

// NewEntry validates and builds an entry.
func NewEntry(id, direction string, amount decimal.Decimal, accountID string) (Entry, error) {
	dir, err := account.ParseDirection(direction)
	if err != nil {
		return Entry{}, err
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNonPositiveAmount, amount)
	}
	if accountID == "" {
		return Entry{}, ErrMissingAccountReference
	}
	return Entry{ID: id, Direction: dir, Amount: amount, AccountID: accountID}, nil
}

// Transaction is a named or anonymous group of entries that balance.
// Transactions are immutable once persisted; corrections are new transactions.
type Transaction struct {
	ID      string
	Name    string
	Entries []Entry
}

// NewTransaction validates the balance invariant and builds a transaction.
// Debit and credit sums may differ by at most tolerance.
func NewTransaction(id, name string, entries []Entry, tolerance decimal.Decimal) (Transaction, error) {
	if len(entries) == 0 {
		return Transaction{}, ErrEmptyTransaction
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Direction {
		case account.Debit:
			debits = debits.Add(e.Amount)
		case account.Credit:
			credits = credits.Add(e.Amount)
		}
	}

	if debits.Sub(credits).Abs().Cmp(tolerance) > 0 {
		return Transaction{}, fmt.Errorf("%w: debits %s, credits %s", ErrTransactionUnbalanced, debits, credits)
	}

	return Transaction{ID: id, Name: name, Entries: entries}, nil
}

// copyEntries returns an independent copy of an entry list so stored state
// cannot be mutated through a returned transaction.
func copyEntries(entries []Entry) []Entry {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return copied
}
