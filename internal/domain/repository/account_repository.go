// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pricecompare/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
// Implementations translate storage errors (e.g. unique violations) into these values
// so the application layer never depends on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken is returned when an insert collides on the username unique constraint.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when an insert collides on the email unique constraint.
	ErrEmailTaken = errors.New("email already taken")
	// ErrVerificationTokenTaken is returned when an insert collides on the verification token unique constraint.
	ErrVerificationTokenTaken = errors.New("verification token already taken")
)

// AccountRepository defines the operations for account persistence.
// Uniqueness of username, email and verification token is enforced by the storage itself.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByEmail retrieves a single account by its (normalized) email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByIdentifier retrieves the account by email (case-insensitively) when
	// identifier contains "@", otherwise by username.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error)

	// FindByVerificationToken retrieves the account currently holding token.
	FindByVerificationToken(ctx context.Context, token string) (*entity.Account, error)

	// Create persists a new account. A uniqueness violation is reported as
	// ErrUsernameTaken, ErrEmailTaken or ErrVerificationTokenTaken.
	Create(ctx context.Context, account *entity.Account) error

	// ActivateByToken atomically moves the unverified account holding token to active
	// and clears its token. It reports false when no row matched.
	ActivateByToken(ctx context.Context, token string) (bool, error)
}
