package ledger

import "errors"

var (
	// ErrNonPositiveAmount indicates an entry amount of zero or less.
	ErrNonPositiveAmount = errors.New("entry amount must be greater than 0")

	// ErrMissingAccountReference indicates an entry without an account id.
	ErrMissingAccountReference = errors.New("entry must have an account id")

	// ErrEmptyTransaction indicates a transaction with no entries.
	ErrEmptyTransaction = errors.New("transaction must have at least one entry")

	// ErrTransactionUnbalanced indicates debit and credit sums differ by more
	// than the configured tolerance.
	ErrTransactionUnbalanced = errors.New("transaction entries must balance")

	// ErrDuplicateTransaction indicates the transaction id is already taken.
	ErrDuplicateTransaction = errors.New("transaction already exists")

	// ErrTransactionNotFound indicates the transaction id does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)
