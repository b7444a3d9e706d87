package user

import (
	"context"
	"errors"
	"fmt"
)

// Store is the persistence contract the service depends on. *Repository
// is the pgx implementation.
type Store interface {
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateEmail(ctx context.Context, id, email string) (*User, error)
}

// Service contains business logic for user accounts.
type Service struct {
	store Store
}

// NewService creates a new user Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new account with a pre-hashed password.
func (s *Service) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	u, err := s.store.Create(ctx, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID returns a user by their UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail returns a user by their email address.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmail(ctx, email)
}

// UpdateEmail changes the account's email address. Tokens issued before
// the change keep carrying the old address until the user logs in again.
func (s *Service) UpdateEmail(ctx context.Context, id, email string) (*User, error) {
	return s.store.UpdateEmail(ctx, id, email)
}

// IsNotFound returns true when the error indicates a user was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
