// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the core entity of the marketplace's identity subsystem.
// Username and Email are immutable after registration.
type Account struct {
	ID                uuid.UUID       // Surrogate identifier, assigned at creation.
	Username          string          // Globally unique login name.
	Email             string          // Globally unique, normalized contact address.
	PasswordHash      string          // Output of the password hasher. Never plaintext.
	ActivationState   ActivationState // Unverified until the verification token is consumed.
	VerificationToken *string         // Set while unverified; cleared by activation.
	ActivatedAt       *time.Time      // When the account became active.
	CreatedAt         time.Time       // Timestamp of when this account was created.
	UpdatedAt         time.Time       // Timestamp of the last modification to this account.
}

// IsActive reports whether the account has completed email verification.
func (a *Account) IsActive() bool {
	return a != nil && a.ActivationState == ActivationStateActive
}

// IsEmailIdentifier reports whether a login identifier names an email address.
// Usernames may not contain "@", so the two namespaces never overlap.
func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// Summary returns the public projection of the account.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}

// AccountSummary is the only account shape that leaves the service boundary.
type AccountSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
