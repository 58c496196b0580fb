package ledger

import (
	"context"
	"fmt"
	"sync"
)

type memoryRepository struct {
	mu           sync.RWMutex
	transactions map[string]Transaction
}

// NewMemoryRepository constructs the in-memory reference transaction store.
func NewMemoryRepository() Repository {
	return &memoryRepository{transactions: make(map[string]Transaction)}
}

func (r *memoryRepository) Save(_ context.Context, transaction Transaction) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transactions[transaction.ID]; exists {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, transaction.ID)
	}
	stored := transaction
	stored.Entries = copyEntries(transaction.Entries)
	r.transactions[transaction.ID] = stored
	return transaction, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	transaction.Entries = copyEntries(transaction.Entries)
	return transaction, nil
}
