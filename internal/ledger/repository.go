package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openbook-ledger/openbook/internal/account"
)

// Repository is the transaction store contract. Transactions are immutable
// once saved; an id is written at most once.
type Repository interface {
	Save(ctx context.Context, tx Transaction) (Transaction, error)
	FindByID(ctx context.Context, id string) (Transaction, error)
}

const pgUniqueViolation = "23505"

// PostgresRepository stores transactions and their entries in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a transaction repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save persists a transaction and its entries. A duplicate transaction id is
// reported as a conflict, never overwritten.
func (r *PostgresRepository) Save(ctx context.Context, transaction Transaction) (Transaction, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, name) VALUES ($1, $2)`, transaction.ID, transaction.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, transaction.ID)
		}
		return Transaction{}, err
	}

	for i, entry := range transaction.Entries {
		if _, err := tx.Exec(ctx, `INSERT INTO entries (id, transaction_id, account_id, direction, amount, position)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, transaction.ID, entry.AccountID, string(entry.Direction), entry.Amount.String(), i); err != nil {
			return Transaction{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}
	return transaction, nil
}

// FindByID fetches a transaction with its entries in recorded order.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Transaction, error) {
	var transaction Transaction
	err := r.db.QueryRow(ctx, `SELECT id, name FROM transactions WHERE id = $1`, id).Scan(&transaction.ID, &transaction.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
		}
		return Transaction{}, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, account_id, direction, amount::text FROM entries
        WHERE transaction_id = $1 ORDER BY position`, id)
	if err != nil {
		return Transaction{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry Entry
		var direction, amount string
		if err := rows.Scan(&entry.ID, &entry.AccountID, &direction, &amount); err != nil {
			return Transaction{}, err
		}
		entry.Direction = account.Direction(direction)
		entry.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return Transaction{}, fmt.Errorf("decode amount for entry %s: %w", entry.ID, err)
		}
		transaction.Entries = append(transaction.Entries, entry)
	}
	return transaction, rows.Err()
}
