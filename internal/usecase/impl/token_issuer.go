package impl

import (
	"context"

	"github.com/pkg/errors"

	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/repository"
	"pricecompare/internal/domain/service"
)

// verificationTokenIssuer draws tokens until one is not held by any account.
// The unique index on verification_token stays the authority; this only avoids
// a wasted insert in the common case.
type verificationTokenIssuer struct {
	generator   service.VerificationTokenGenerator
	maxAttempts int
}

func newVerificationTokenIssuer(generator service.VerificationTokenGenerator, maxAttempts int) *verificationTokenIssuer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &verificationTokenIssuer{
		generator:   generator,
		maxAttempts: maxAttempts,
	}
}

// Issue returns a token that no account held at the time of the check.
func (i *verificationTokenIssuer) Issue(ctx context.Context, accounts repository.AccountRepository) (string, error) {
	for range i.maxAttempts {
		token, err := i.generator.Generate()
		if err != nil {
			return "", errors.Wrap(err, "failed to generate verification token")
		}

		_, err = accounts.FindByVerificationToken(ctx, token)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return token, nil
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to check verification token")
		}
	}

	return "", errors.Wrapf(domainerrors.ErrTokenIssuanceExhausted, "all %d drawn tokens were taken", i.maxAttempts)
}
