// Package model holds the GORM persistence models and their mapping to domain entities.
package model

import (
	"time"

	"github.com/google/uuid"

	"pricecompare/internal/domain/entity"
)

// Unique index names. The repository maps a violation back to the colliding column by name.
const (
	UniqueAccountsUsername          = "uq_accounts_username"
	UniqueAccountsEmail             = "uq_accounts_email"
	UniqueAccountsVerificationToken = "uq_accounts_verification_token"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 assigned by the application.
type AccountModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username          string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_accounts_username"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_accounts_email"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	ActivationState   string    `gorm:"type:varchar(16);not null;default:unverified;check:chk_accounts_activation_state,activation_state IN ('unverified','active')"`
	VerificationToken *string   `gorm:"type:varchar(64);uniqueIndex:uq_accounts_verification_token"`
	ActivatedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model into a domain entity.
func (m *AccountModel) ToDomain() *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		ActivationState:   entity.ActivationState(m.ActivationState),
		VerificationToken: m.VerificationToken,
		ActivatedAt:       m.ActivatedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromAccount converts a domain entity into its persistence model.
func FromAccount(account *entity.Account) *AccountModel {
	if account == nil {
		return nil
	}

	return &AccountModel{
		ID:                account.ID,
		Username:          account.Username,
		Email:             account.Email,
		PasswordHash:      account.PasswordHash,
		ActivationState:   account.ActivationState.String(),
		VerificationToken: account.VerificationToken,
		ActivatedAt:       account.ActivatedAt,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}
