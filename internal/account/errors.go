package account

import "errors"

var (
	// ErrInvalidDirection indicates a direction value outside debit/credit.
	ErrInvalidDirection = errors.New("direction must be either debit or credit")

	// ErrAccountNotFound indicates the referenced account id does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount indicates the account id is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
)
