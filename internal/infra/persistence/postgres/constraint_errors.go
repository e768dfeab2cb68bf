package postgres

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pricecompare/internal/domain/repository"
	"pricecompare/internal/infra/persistence/model"
)

// uniqueViolationErrors maps unique index names to their repository errors.
var uniqueViolationErrors = map[string]error{
	model.UniqueAccountsUsername:          repository.ErrUsernameTaken,
	model.UniqueAccountsEmail:             repository.ErrEmailTaken,
	model.UniqueAccountsVerificationToken: repository.ErrVerificationTokenTaken,
}

// translateUniqueViolation returns the repository error for a unique index violation,
// or nil when err is not one.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if mapped, ok := uniqueViolationErrors[pgErr.ConstraintName]; ok {
			return mapped
		}

		return errors.Wrapf(gorm.ErrDuplicatedKey, "unique constraint %s", pgErr.ConstraintName)
	}

	if isUniqueConstraintViolation(err) {
		return errors.Wrap(gorm.ErrDuplicatedKey, "unique constraint")
	}

	return nil
}

func isUniqueConstraintViolation(err error) bool {
	// Only reported as such when the dialector has TranslateError enabled.
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
