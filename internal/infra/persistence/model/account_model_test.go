package model

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"pricecompare/internal/domain/entity"
)

func TestAccountModel_Mapping(t *testing.T) {
	token := "abc"
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	account := &entity.Account{
		ID:                uuid.New(),
		Username:          "alice",
		Email:             "alice@example.com",
		PasswordHash:      "hash",
		ActivationState:   entity.ActivationStateUnverified,
		VerificationToken: &token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	m := FromAccount(account)
	assert.Equal(t, "unverified", m.ActivationState)
	assert.Equal(t, account, m.ToDomain())

	assert.Nil(t, FromAccount(nil))
	var nilModel *AccountModel
	assert.Nil(t, nilModel.ToDomain())
	assert.Equal(t, "accounts", AccountModel{}.TableName())
}

func TestAccountModel_ActivationStateCheckConstraint(t *testing.T) {
	parsed, err := schema.Parse(&AccountModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	checks := parsed.ParseCheckConstraints()
	chk, ok := checks["chk_accounts_activation_state"]
	require.True(t, ok)
	assert.Equal(t, "activation_state IN ('unverified','active')", chk.Constraint)
	assert.Equal(t, "activation_state", chk.Field.DBName)
}
