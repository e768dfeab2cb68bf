// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"pricecompare/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to log in. Identifier is a username or an email.
type LoginInput struct {
	Identifier string
	Password   string
}

// --- Output DTOs ---

// RegisterOutput returns the public summary of the new account.
// EmailWarning is set when the verification email could not be delivered; the account is still created.
type RegisterOutput struct {
	Account      entity.AccountSummary
	EmailWarning string
}

// LoginOutput returns the issued access token.
type LoginOutput struct {
	AccessToken *entity.AccessToken
}

// AccountUsecase defines the account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyAccount(ctx context.Context, token string) error
	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.AccountSummary, error)
}
