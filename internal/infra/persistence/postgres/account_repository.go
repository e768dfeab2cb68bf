package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pricecompare/internal/domain/entity"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/repository"
	"pricecompare/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single account by its username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByIdentifier retrieves the account by email when identifier contains "@",
// otherwise by username. Usernames never contain "@".
func (repo *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	if entity.IsEmailIdentifier(identifier) {
		return repo.FindByEmail(ctx, strings.ToLower(identifier))
	}

	return repo.FindByUsername(ctx, identifier)
}

// FindByVerificationToken retrieves the account currently holding token.
func (repo *accountRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	return repo.findOne(ctx, "verification_token = ?", token)
}

func (repo *accountRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).Where(query, args...).Take(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account")
	}

	return accountM.ToDomain(), nil
}

// Create persists a new account. The generated ID and timestamps are written back to account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}
	if account.ActivationState == "" {
		account.ActivationState = entity.ActivationStateUnverified
	}

	accountM := model.FromAccount(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if mapped := translateUniqueViolation(err); mapped != nil {
			return mapped
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// ActivateByToken runs a single conditional update so concurrent callers with the same token
// see exactly one success.
func (repo *accountRepository) ActivateByToken(ctx context.Context, token string) (bool, error) {
	now := time.Now().UTC()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("verification_token = ? AND activation_state = ?", token, entity.ActivationStateUnverified.String()).
		Updates(map[string]any{
			"activation_state":   entity.ActivationStateActive.String(),
			"verification_token": nil,
			"activated_at":       now,
			"updated_at":         now,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to activate account")
	}

	return result.RowsAffected == 1, nil
}
