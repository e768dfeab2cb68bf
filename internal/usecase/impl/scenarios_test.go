package impl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pricecompare/internal/domain/entity"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/usecase"
)

func httpStatusOf(t *testing.T, err error) int {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr.HTTPCode()
}

// TestAccountLifecycleScenarios walks register, verify and login in order.
func TestAccountLifecycleScenarios(t *testing.T) {
	f := createTestAccountService(t, nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	// Register leaves the account unverified.
	out, err := f.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	stored, err := f.store.FindByID(ctx, out.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivationStateUnverified, stored.ActivationState)

	// Verifying with the emailed token activates it.
	require.NoError(t, f.service.VerifyAccount(ctx, *stored.VerificationToken))
	stored, err = f.store.FindByID(ctx, out.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivationStateActive, stored.ActivationState)

	// Login with the right password yields a bearer token.
	login, err := f.service.Login(ctx, &usecase.LoginInput{Identifier: "alice", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, entity.TokenTypeBearer, login.AccessToken.TokenType)
	assert.NotEmpty(t, login.AccessToken.Token)

	// Wrong password is a 401.
	_, err = f.service.Login(ctx, &usecase.LoginInput{Identifier: "alice", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, httpStatusOf(t, err))

	// Duplicate email is a 400 conflict.
	_, err = f.service.Register(ctx, &usecase.RegisterInput{Username: "alice2", Email: "alice@x.com", Password: "Passw0rd!"})
	var conflictErr *domainerrors.AccountConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{domainerrors.FieldEmail}, conflictErr.Fields)
	assert.Equal(t, http.StatusBadRequest, httpStatusOf(t, err))

	// Unknown verification token is a 404.
	err = f.service.VerifyAccount(ctx, "garbage-token")
	assert.Equal(t, http.StatusNotFound, httpStatusOf(t, err))
}
