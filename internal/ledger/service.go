package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbook-ledger/openbook/internal/account"
	"github.com/openbook-ledger/openbook/internal/events"
)

// EntryCommand is one requested movement inside a transaction command.
type EntryCommand struct {
	Direction string
	Amount    decimal.Decimal
	AccountID string
}

// Command is a request to record a transaction.
type Command struct {
	Name    string
	Entries []EntryCommand
}

// Service is the ledger engine. It validates a transaction command, applies
// its entries to the account store as one atomic unit and persists the
// resulting transaction. Balances change through no other path.
type Service struct {
	accounts     account.Repository
	transactions Repository
	tolerance    decimal.Decimal
	publisher    events.Publisher
	log          *slog.Logger
}

// NewService builds a ledger engine. Tolerance is the maximum absolute
// difference allowed between a transaction's debit and credit sums.
func NewService(accounts account.Repository, transactions Repository, tolerance decimal.Decimal, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		tolerance:    tolerance,
		publisher:    publisher,
		log:          log,
	}
}

// Apply records a transaction. transactionID may be empty, in which case one
// is generated. Validation happens before any account is touched; persistence
// happens only after the atomic update succeeds, so a partial transaction is
// never visible.
func (s *Service) Apply(ctx context.Context, cmd Command, transactionID string) (Transaction, error) {
	for _, entry := range cmd.Entries {
		if entry.AccountID == "" {
			return Transaction{}, ErrMissingAccountReference
		}
		exists, err := s.accounts.Exists(ctx, entry.AccountID)
		if err != nil {
			return Transaction{}, err
		}
		if !exists {
			return Transaction{}, fmt.Errorf("%w: %s", account.ErrAccountNotFound, entry.AccountID)
		}
	}

	entries := make([]Entry, 0, len(cmd.Entries))
	for _, entryCmd := range cmd.Entries {
		entry, err := NewEntry(uuid.NewString(), entryCmd.Direction, entryCmd.Amount, entryCmd.AccountID)
		if err != nil {
			return Transaction{}, err
		}
		entries = append(entries, entry)
	}

	if transactionID == "" {
		transactionID = uuid.NewString()
	} else if _, err := s.transactions.FindByID(ctx, transactionID); err == nil {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, transactionID)
	} else if !errors.Is(err, ErrTransactionNotFound) {
		return Transaction{}, err
	}

	transaction, err := NewTransaction(transactionID, cmd.Name, entries, s.tolerance)
	if err != nil {
		return Transaction{}, err
	}

	if _, err := s.accounts.UpdateMany(ctx, updatesFor(entries)); err != nil {
		return Transaction{}, err
	}

	persisted, err := s.transactions.Save(ctx, transaction)
	if err != nil {
		return Transaction{}, err
	}

	s.publish(ctx, persisted)
	return persisted, nil
}

// Get retrieves a persisted transaction.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	return s.transactions.FindByID(ctx, id)
}

// updatesFor maps entries to account store updates, one per entry so a list
// touching the same account more than once applies every movement.
func updatesFor(entries []Entry) []account.Update {
	updates := make([]account.Update, 0, len(entries))
	for _, entry := range entries {
		entry := entry
		updates = append(updates, account.Update{
			AccountID: entry.AccountID,
			Apply: func(a *account.Account) {
				a.ApplyEntry(entry.Direction, entry.Amount)
			},
		})
	}
	return updates
}

func (s *Service) publish(ctx context.Context, transaction Transaction) {
	completed := make([]events.CompletedEntry, 0, len(transaction.Entries))
	for _, entry := range transaction.Entries {
		completed = append(completed, events.CompletedEntry{
			ID:        entry.ID,
			Direction: string(entry.Direction),
			Amount:    entry.Amount,
			AccountID: entry.AccountID,
		})
	}
	event := events.TransactionCompleted{
		TransactionID: transaction.ID,
		Name:          transaction.Name,
		Entries:       completed,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish transaction completed", "transaction_id", transaction.ID, "error", err)
	}
}
