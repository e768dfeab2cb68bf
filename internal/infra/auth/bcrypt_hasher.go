// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"pricecompare/config"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/service"
)

// passwordPolicy holds the four independent strength rules plus the bcrypt input ceiling.
type passwordPolicy struct {
	minLength int
	maxLength int
	special   string
}

func defaultPasswordPolicy() passwordPolicy {
	return passwordPolicy{
		minLength: config.DefaultPasswordMinLength,
		maxLength: config.DefaultPasswordMaxLength,
		special:   config.DefaultSpecialCharacters,
	}
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy passwordPolicy
}

// NewBcryptHasher is the constructor for bcryptHasher.
// Cost and policy come from the auth and passwordStrength sections; unset values use defaults.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:   bcrypt.DefaultCost,
		policy: defaultPasswordPolicy(),
	}
	if cfg == nil {
		return hasher
	}

	if cfg.Auth != nil {
		hasher.cost = normalizeCost(cfg.Auth.BcryptCost)
	}
	if ps := cfg.PasswordStrength; ps != nil {
		if ps.MinLength > 0 {
			hasher.policy.minLength = ps.MinLength
		}
		if ps.MaxLength > 0 {
			hasher.policy.maxLength = ps.MaxLength
		}
		if ps.SpecialCharacters != "" {
			hasher.policy.special = ps.SpecialCharacters
		}
	}

	return hasher
}

// NewBcryptHasherWithCost creates a hasher with the default policy and an explicit bcrypt cost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:   normalizeCost(cost),
		policy: defaultPasswordPolicy(),
	}
}

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}

	return cost
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	// err is nil only if the password and hash match.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength evaluates every rule and reports all violations at once.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var violated []domainerrors.PasswordRule

	if utf8.RuneCountInString(password) < h.policy.minLength {
		violated = append(violated, domainerrors.PasswordRuleMinLength)
	}
	if h.policy.maxLength > 0 && len(password) > h.policy.maxLength {
		violated = append(violated, domainerrors.PasswordRuleMaxLength)
	}
	if !h.hasLowercase(password) || !h.hasUppercase(password) {
		violated = append(violated, domainerrors.PasswordRuleMixedCase)
	}
	if !h.hasNumbers(password) {
		violated = append(violated, domainerrors.PasswordRuleDigit)
	}
	if !h.hasSpecialChars(password) {
		violated = append(violated, domainerrors.PasswordRuleSpecialCharacter)
	}

	if len(violated) > 0 {
		return domainerrors.NewPasswordPolicyError(violated...)
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsAny(s, h.policy.special)
}
