package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service exposes account opening and lookup.
type Service struct {
	repo Repository
}

// NewService builds an account service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OpenInput captures data required to open an account.
type OpenInput struct {
	Name      string
	Direction string
}

// Open creates a zero-balance account with the requested polarity.
func (s *Service) Open(ctx context.Context, input OpenInput) (Account, error) {
	direction, err := ParseDirection(input.Direction)
	if err != nil {
		return Account{}, err
	}

	id := uuid.NewString()
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if exists {
		return Account{}, fmt.Errorf("%w: %s", ErrDuplicateAccount, id)
	}

	return s.repo.Save(ctx, New(id, input.Name, direction))
}

// Get retrieves an account snapshot.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.FindByID(ctx, id)
}
