package account

import (
	"context"
	"fmt"
	"sync"
)

// accountLock is a per-account mutex with a waiter count so the last releaser
// can remove the map slot without racing a new acquirer.
type accountLock struct {
	mu   sync.Mutex
	refs int
}

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account

	lockMu sync.Mutex
	locks  map[string]*accountLock
}

// NewMemoryRepository constructs the in-memory reference account store. It is
// safe for concurrent use; multi-account updates are serialized per account
// through a lazily built lock table.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		accounts: make(map[string]Account),
		locks:    make(map[string]*accountLock),
	}
}

func (r *memoryRepository) Save(_ context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acct.ID] = acct
	return acct, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return acct, nil
}

func (r *memoryRepository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[id]
	return ok, nil
}

// UpdateMany applies every update as one atomic unit. Per-account locks are
// acquired in sorted id order; since all callers use the same order, two
// transactions touching the same accounts cannot deadlock. Existence is
// re-checked after locking and nothing is mutated until every referenced
// account is known to exist.
func (r *memoryRepository) UpdateMany(_ context.Context, updates []Update) ([]Account, error) {
	ids := sortedAccountIDs(updates)

	for _, id := range ids {
		r.acquire(id)
	}
	defer func() {
		for i := len(ids) - 1; i >= 0; i-- {
			r.release(ids[i])
		}
	}()

	r.mu.RLock()
	working := make(map[string]*Account, len(ids))
	for _, id := range ids {
		acct, ok := r.accounts[id]
		if !ok {
			r.mu.RUnlock()
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		working[id] = &acct
	}
	r.mu.RUnlock()

	order := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, update := range updates {
		update.Apply(working[update.AccountID])
		if !seen[update.AccountID] {
			seen[update.AccountID] = true
			order = append(order, update.AccountID)
		}
	}

	r.mu.Lock()
	for _, id := range order {
		r.accounts[id] = *working[id]
	}
	r.mu.Unlock()

	updated := make([]Account, 0, len(order))
	for _, id := range order {
		updated = append(updated, *working[id])
	}
	return updated, nil
}

// acquire blocks until the caller holds the exclusive lock for id.
func (r *memoryRepository) acquire(id string) {
	r.lockMu.Lock()
	l, ok := r.locks[id]
	if !ok {
		l = &accountLock{}
		r.locks[id] = l
	}
	l.refs++
	r.lockMu.Unlock()

	l.mu.Lock()
}

// release unlocks id and drops the lock table slot once uncontended.
func (r *memoryRepository) release(id string) {
	r.lockMu.Lock()
	l := r.locks[id]
	l.refs--
	if l.refs == 0 {
		delete(r.locks, id)
	}
	r.lockMu.Unlock()

	l.mu.Unlock()
}
