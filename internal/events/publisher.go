package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is emitted after a transaction's entries have been
// applied and the transaction persisted.
type TransactionCompleted struct {
	TransactionID string           `json:"transaction_id"`
	Name          string           `json:"name,omitempty"`
	Entries       []CompletedEntry `json:"entries"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// CompletedEntry mirrors one posted entry inside a completed transaction.
type CompletedEntry struct {
	ID        string          `json:"id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id"`
}

// Publisher delivers ledger events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
}

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

// Publish discards the event.
func (NoopPublisher) Publish(context.Context, TransactionCompleted) error { return nil }
