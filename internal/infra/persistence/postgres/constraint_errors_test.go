package postgres

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"pricecompare/internal/domain/repository"
)

func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "username index",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_username"},
			expected: repository.ErrUsernameTaken,
		},
		{
			name:     "email index",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_email"},
			expected: repository.ErrEmailTaken,
		},
		{
			name:     "verification token index wrapped by caller",
			err:      errors.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_verification_token"}, "insert"),
			expected: repository.ErrVerificationTokenTaken,
		},
		{
			name:     "unknown index",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_pkey"},
			expected: gorm.ErrDuplicatedKey,
		},
		{
			name:     "translated by dialector",
			err:      gorm.ErrDuplicatedKey,
			expected: gorm.ErrDuplicatedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateUniqueViolation(tt.err), tt.expected)
		})
	}
}

func TestTranslateUniqueViolation_NotAViolation(t *testing.T) {
	assert.NoError(t, translateUniqueViolation(errors.New("connection reset")))
	assert.NoError(t, translateUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
}
