package account

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Update names one account and the balance mutation to apply to it.
type Update struct {
	AccountID string
	Apply     func(*Account)
}

// Repository is the account store contract consumed by the ledger engine.
// UpdateMany is the single mutation path for balances: it applies every
// update as one atomic unit with respect to other concurrent calls, or
// applies none of them.
type Repository interface {
	Save(ctx context.Context, acct Account) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateMany(ctx context.Context, updates []Update) ([]Account, error)
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds an account repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts an account record.
func (r *PostgresRepository) Save(ctx context.Context, acct Account) (Account, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (id, name, balance, direction) VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, balance = EXCLUDED.balance`,
		acct.ID, acct.Name, acct.Balance.String(), string(acct.Direction))
	if err != nil {
		return Account{}, fmt.Errorf("save account %s: %w", acct.ID, err)
	}
	return acct, nil
}

// FindByID fetches an account snapshot by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, balance::text, direction FROM accounts WHERE id = $1`, id)
	return scanAccount(row, id)
}

// Exists reports whether an account id is present.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateMany applies all updates inside one database transaction, locking the
// account rows with SELECT ... FOR UPDATE in sorted id order. Every concurrent
// transaction locks in the same order, so circular wait cannot occur.
func (r *PostgresRepository) UpdateMany(ctx context.Context, updates []Update) ([]Account, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	loaded := make(map[string]*Account)
	for _, id := range sortedAccountIDs(updates) {
		row := tx.QueryRow(ctx, `SELECT id, name, balance::text, direction FROM accounts WHERE id = $1 FOR UPDATE`, id)
		acct, err := scanAccount(row, id)
		if err != nil {
			return nil, err
		}
		loaded[id] = &acct
	}

	updated := make([]Account, 0, len(loaded))
	for _, update := range updates {
		update.Apply(loaded[update.AccountID])
	}
	for _, id := range sortedAccountIDs(updates) {
		acct := loaded[id]
		if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, acct.ID, acct.Balance.String()); err != nil {
			return nil, fmt.Errorf("update account %s: %w", acct.ID, err)
		}
		updated = append(updated, *acct)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// sortedAccountIDs returns the distinct account ids referenced by updates in
// lexicographic order, the global lock acquisition order.
func sortedAccountIDs(updates []Update) []string {
	seen := make(map[string]bool, len(updates))
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		if !seen[u.AccountID] {
			seen[u.AccountID] = true
			ids = append(ids, u.AccountID)
		}
	}
	sort.Strings(ids)
	return ids
}

func scanAccount(row pgx.Row, id string) (Account, error) {
	var acct Account
	var balance, direction string
	if err := row.Scan(&acct.ID, &acct.Name, &balance, &direction); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		return Account{}, err
	}
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return Account{}, fmt.Errorf("decode balance for account %s: %w", id, err)
	}
	acct.Balance = bal
	acct.Direction = Direction(direction)
	return acct, nil
}
